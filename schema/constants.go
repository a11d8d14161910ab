package schema

// Custom string types for type safety.
type (
	// AttributeKind represents how a raw attribute is normalized.
	AttributeKind string

	// BoundsPolicy represents how numeric values outside [min, max] are handled.
	BoundsPolicy string

	// FailurePolicy represents how a batch reacts to a row that fails validation.
	FailurePolicy string

	// NormalizationMode represents where numeric bounds come from.
	NormalizationMode string

	// Grade represents a letter grade assigned to a composite score.
	Grade string

	// OutputMode represents the format of the output.
	OutputMode string

	// InputFormat represents the format of a dataset handed to the loader.
	InputFormat string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All attribute kinds supported.
const (
	CategoricalKind     AttributeKind = "categorical"
	NumericKind         AttributeKind = "numeric"
	InvertedNumericKind AttributeKind = "inverted-numeric"
)

// All bounds policies supported.
const (
	StrictBounds      BoundsPolicy = "strict" // default
	ClampBounds       BoundsPolicy = "clamp"
	ExtrapolateBounds BoundsPolicy = "extrapolate"
)

// All failure policies supported.
const (
	SkipFailures  FailurePolicy = "skip" // default
	AbortFailures FailurePolicy = "abort"
)

// All normalization modes supported.
const (
	StaticNormalization NormalizationMode = "static" // default
	BatchNormalization  NormalizationMode = "batch"
)

// All grades, best first.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All input formats supported.
const (
	CSVInput     InputFormat = "csv"
	JSONInput    InputFormat = "json"
	XLSXInput    InputFormat = "xlsx"
	ParquetInput InputFormat = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// AllGrades lists every grade from best to worst.
var AllGrades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// ValidAttributeKinds lists all valid attribute kinds.
var ValidAttributeKinds = map[AttributeKind]struct{}{
	CategoricalKind:     {},
	NumericKind:         {},
	InvertedNumericKind: {},
}

// ValidBoundsPolicies lists all valid bounds policies.
var ValidBoundsPolicies = map[BoundsPolicy]struct{}{
	StrictBounds:      {},
	ClampBounds:       {},
	ExtrapolateBounds: {},
}

// ValidFailurePolicies lists all valid failure policies.
var ValidFailurePolicies = map[FailurePolicy]struct{}{
	SkipFailures:  {},
	AbortFailures: {},
}

// ValidNormalizationModes lists all valid normalization modes.
var ValidNormalizationModes = map[NormalizationMode]struct{}{
	StaticNormalization: {},
	BatchNormalization:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Rank returns the position of a grade where A is 0 and F is 4.
// Unknown grades rank below F.
func (g Grade) Rank() int {
	for i, candidate := range AllGrades {
		if candidate == g {
			return i
		}
	}
	return len(AllGrades)
}

// AtLeast reports whether g is as good as or better than other.
func (g Grade) AtLeast(other Grade) bool {
	return g.Rank() <= other.Rank()
}

// IsNumeric reports whether the kind is normalized over numeric bounds.
func (k AttributeKind) IsNumeric() bool {
	return k == NumericKind || k == InvertedNumericKind
}

// ValidInputFormats lists all valid dataset formats.
var ValidInputFormats = map[InputFormat]struct{}{
	CSVInput:     {},
	JSONInput:    {},
	XLSXInput:    {},
	ParquetInput: {},
}
