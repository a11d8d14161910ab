package schema

import (
	"encoding/json"
	"math"
)

// AttributeDescription represents one attribute for display purposes.
type AttributeDescription struct {
	AttributeSpec
	Weight float64 `json:"weight"`
	Domain string  `json:"domain"` // "[40, 80]" or "PCIe < SXM"
}

// AttributesRenderModel contains all processed data needed for displaying the active configuration.
type AttributesRenderModel struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Mode         NormalizationMode      `json:"mode"`
	BoundsPolicy BoundsPolicy           `json:"bounds_policy"`
	Scale        float64                `json:"scale"`
	Attributes   []AttributeDescription `json:"attributes"`
	Formula      string                 `json:"formula"`
	ScoreMin     float64                `json:"score_min"`
	ScoreMax     float64                `json:"score_max"`
	Grades       []GradeThreshold       `json:"grades"`
}

// MarshalJSON encodes an unbounded score range as nulls, since JSON has no infinity.
func (m AttributesRenderModel) MarshalJSON() ([]byte, error) {
	type plain AttributesRenderModel
	return json.Marshal(struct {
		plain
		ScoreMin *float64 `json:"score_min"`
		ScoreMax *float64 `json:"score_max"`
	}{plain: plain(m), ScoreMin: finiteOrNil(m.ScoreMin), ScoreMax: finiteOrNil(m.ScoreMax)})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
