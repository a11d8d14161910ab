package schema

// Default attribute names for a single-GPU on-demand SKU table.
const (
	AttrFormFactor      = "form_factor"
	AttrVRAM            = "vram"             // GB
	AttrRAM             = "ram"              // GB
	AttrVCPUs           = "vcpus"            // count
	AttrInternalStorage = "internal_storage" // GB
	AttrPriceOnDemand   = "price_on_demand"  // USD per hour
)

// DefaultAttributes returns the built-in attribute set for 1xA100 80GB on-demand offers.
func DefaultAttributes() []AttributeSpec {
	return []AttributeSpec{
		{Name: AttrFormFactor, Kind: CategoricalKind, Categories: []string{"PCIe", "SXM"}},
		{Name: AttrVRAM, Kind: NumericKind, Min: 40, Max: 80},
		{Name: AttrRAM, Kind: NumericKind, Min: 90, Max: 251},
		{Name: AttrVCPUs, Kind: NumericKind, Min: 8, Max: 30},
		{Name: AttrInternalStorage, Kind: NumericKind, Min: 0, Max: 4000},
		{Name: AttrPriceOnDemand, Kind: InvertedNumericKind, Min: 1.10, Max: 3.36},
	}
}

// DefaultWeights returns the built-in weights. They sum to 1.0, so with the
// default scale the realized score range is [0, 100].
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		AttrFormFactor:      0.10,
		AttrVRAM:            0.20,
		AttrRAM:             0.18,
		AttrVCPUs:           0.16,
		AttrInternalStorage: 0.11,
		AttrPriceOnDemand:   0.25,
	}
}
