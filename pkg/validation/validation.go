// Package validation checks estimation parameters against the specification
// document's declared ranges. Validation is advisory: violations never block
// clamping, and clamping is always safe to apply without prior validation.
package validation

import (
	"fmt"

	"github.com/tonsuu/tonsuu/pkg/spec"
)

// Params holds the scalar parameters subject to range checks. Nil fields
// are treated as "not provided" and skipped by both Validate and Clamp.
// UpperArea, Slope, and FillRatioZ belong to the legacy multi-parameter
// strategy and remain supported for compatibility.
type Params struct {
	UpperArea      *float64 `json:"upperArea,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Slope          *float64 `json:"slope,omitempty"`
	FillRatioL     *float64 `json:"fillRatioL,omitempty"`
	FillRatioW     *float64 `json:"fillRatioW,omitempty"`
	FillRatioZ     *float64 `json:"fillRatioZ,omitempty"`
	TaperRatio     *float64 `json:"taperRatio,omitempty"`
	PackingDensity *float64 `json:"packingDensity,omitempty"`
}

// Violation reports a parameter outside its declared range.
type Violation struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %v (範囲外: %.2f~%.2f)", v.Field, v.Value, v.Min, v.Max)
}

// Validate checks every provided parameter independently against the
// document's matching range. Boundary values are valid. The returned slice
// is empty when all provided parameters are in range.
func Validate(doc *spec.Document, p Params) []Violation {
	r := doc.Ranges

	var violations []Violation
	check := func(field string, value *float64, min, max float64) {
		if value == nil {
			return
		}
		if *value < min || *value > max {
			violations = append(violations, Violation{
				Field: field,
				Value: *value,
				Min:   min,
				Max:   max,
			})
		}
	}

	check("upperArea", p.UpperArea, r.UpperArea.Min, r.UpperArea.Max)
	check("height", p.Height, r.Height.Min, r.Height.Max)
	check("slope", p.Slope, r.Slope.Min, r.Slope.Max)
	check("fillRatioL", p.FillRatioL, r.FillRatioL.Min, r.FillRatioL.Max)
	check("fillRatioW", p.FillRatioW, r.FillRatioW.Min, r.FillRatioW.Max)
	check("fillRatioZ", p.FillRatioZ, r.FillRatioZ.Min, r.FillRatioZ.Max)
	check("taperRatio", p.TaperRatio, r.TaperRatio.Min, r.TaperRatio.Max)
	check("packingDensity", p.PackingDensity, r.PackingDensity.Min, r.PackingDensity.Max)

	return violations
}

// Clamp forces every provided parameter into its declared range and returns
// the adjusted parameters. Nil fields remain nil.
func Clamp(doc *spec.Document, p Params) Params {
	r := doc.Ranges
	return Params{
		UpperArea:      clampField(p.UpperArea, r.UpperArea.Min, r.UpperArea.Max),
		Height:         clampField(p.Height, r.Height.Min, r.Height.Max),
		Slope:          clampField(p.Slope, r.Slope.Min, r.Slope.Max),
		FillRatioL:     clampField(p.FillRatioL, r.FillRatioL.Min, r.FillRatioL.Max),
		FillRatioW:     clampField(p.FillRatioW, r.FillRatioW.Min, r.FillRatioW.Max),
		FillRatioZ:     clampField(p.FillRatioZ, r.FillRatioZ.Min, r.FillRatioZ.Max),
		TaperRatio:     clampField(p.TaperRatio, r.TaperRatio.Min, r.TaperRatio.Max),
		PackingDensity: clampField(p.PackingDensity, r.PackingDensity.Min, r.PackingDensity.Max),
	}
}

// ClampValue forces a single value into [min, max].
func ClampValue(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampField(v *float64, min, max float64) *float64 {
	if v == nil {
		return nil
	}
	clamped := ClampValue(*v, min, max)
	return &clamped
}
