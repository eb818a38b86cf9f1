// Package estimates implements the cargo tonnage estimation domain module.
package estimates

import (
	"time"

	"github.com/google/uuid"

	"github.com/tonsuu/tonsuu/pkg/calculation"
	"github.com/tonsuu/tonsuu/pkg/pipeline"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

// Estimate is a completed ensemble analysis with its request parameters.
type Estimate struct {
	ID            uuid.UUID        `json:"id"`
	CreatedAt     time.Time        `json:"createdAt"`
	TruckClass    string           `json:"truckClass"`
	EnsembleCount int              `json:"ensembleCount"`
	Result        *pipeline.Result `json:"result"`
}

// AnalyzeCommand carries the images and parameter overrides for a full
// analysis. Images are standard base64; empty overrides fall back to the
// configured pipeline defaults.
type AnalyzeCommand struct {
	Images        []string `json:"images"`
	TruckClass    string   `json:"truckClass,omitempty"`
	MaterialType  string   `json:"materialType,omitempty"`
	EnsembleCount int      `json:"ensembleCount,omitempty"`
}

// CalculateCommand carries explicit parameters for a direct tonnage
// calculation without any model calls.
type CalculateCommand struct {
	calculation.CoreParams
	TruckClass string `json:"truckClass,omitempty"`
}

// CalculateResult pairs the calculation output with the resolved inputs.
type CalculateResult struct {
	TruckClass string                    `json:"truckClass"`
	Params     calculation.CoreParams    `json:"params"`
	Tonnage    calculation.TonnageResult `json:"tonnage"`
	Violations []validation.Violation    `json:"violations,omitempty"`
}

// ValidateResult reports range violations for a parameter set.
type ValidateResult struct {
	Valid      bool                   `json:"valid"`
	Violations []validation.Violation `json:"violations"`
	Clamped    validation.Params      `json:"clamped"`
}
