package pipeline

import "encoding/json"

// Default fill values applied when the model omits a field. Defaults are a
// parsing-time concern: downstream code never sees an absent field.
const (
	DefaultFillRatioL     = 0.8
	DefaultFillRatioW     = 0.7
	DefaultTaperRatio     = 0.85
	DefaultPackingDensity = 0.7
)

// GeometryResponse is a single geometry-detection reply from the model.
// Coordinates are normalized: 0.0 is the top of the image, 1.0 the bottom.
// Absent fields decode to zero; a zero tailgate marks the trial unusable.
type GeometryResponse struct {
	PlateBox        *[4]float64 `json:"plateBox"`
	TailgateTopY    float64     `json:"tailgateTopY"`
	TailgateBottomY float64     `json:"tailgateBottomY"`
	CargoTopY       float64     `json:"cargoTopY"`
}

// FillResponse is a single fill-estimation reply from the model. Absent
// scalar fields decode to their documented defaults. An empty MaterialType
// or the sentinel "?" counts as no material vote.
type FillResponse struct {
	FillRatioL     float64 `json:"fillRatioL"`
	FillRatioW     float64 `json:"fillRatioW"`
	TaperRatio     float64 `json:"taperRatio"`
	PackingDensity float64 `json:"packingDensity"`
	MaterialType   string  `json:"materialType"`
	Reasoning      string  `json:"reasoning"`
}

// UnmarshalJSON decodes with defaults pre-applied so that omitted fields
// take their documented values rather than zero.
func (f *FillResponse) UnmarshalJSON(data []byte) error {
	type alias FillResponse
	a := alias{
		FillRatioL:     DefaultFillRatioL,
		FillRatioW:     DefaultFillRatioW,
		TaperRatio:     DefaultTaperRatio,
		PackingDensity: DefaultPackingDensity,
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = FillResponse(a)
	return nil
}
