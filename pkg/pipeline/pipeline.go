// Package pipeline orchestrates the ensemble box-overlay analysis: repeated
// geometry and fill estimation rounds against a prompt sender, statistical
// combination of the per-trial observations, and a single tonnage
// calculation on the combined values.
//
// Per-trial failures (transport errors, unparsable replies, unusable
// observations) are recorded in the run logs and tolerated; the pipeline
// fails only when every trial of a round fails.
package pipeline

import (
	"context"
	"errors"

	"github.com/tonsuu/tonsuu/pkg/calculation"
	"github.com/tonsuu/tonsuu/pkg/formatting"
	"github.com/tonsuu/tonsuu/pkg/geometry"
	"github.com/tonsuu/tonsuu/pkg/spec"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

// Terminal round failures: every trial of the round produced no usable
// observation.
var (
	ErrNoValidGeometry = errors.New("geometry detection failed in every trial")
	ErrNoValidFill     = errors.New("fill estimation failed in every trial")
)

// Per-trial outcome tags recorded in the geometry run log. The first three
// mirror the resolver's scale methods; the last two mark trials that never
// reached the resolver.
const (
	OutcomeTailgate   = string(geometry.MethodTailgate)
	OutcomePlate      = string(geometry.MethodPlate)
	OutcomeNone       = string(geometry.MethodNone)
	OutcomeParseError = "parse_error"
	OutcomeError      = "error"
)

// Sender delivers a prompt with attached images to the model and returns
// the raw text reply. Transport, authentication, rate limiting, timeouts,
// and retries are all the sender's concern.
type Sender interface {
	Send(ctx context.Context, prompt string, images [][]byte) (string, error)
}

// Config selects the truck class, the fallback material, and the number of
// trials per estimation round.
type Config struct {
	TruckClass    string `json:"truckClass"`
	MaterialType  string `json:"materialType"`
	EnsembleCount int    `json:"ensembleCount"`
}

// GeometryRun is the audit record of one geometry trial.
type GeometryRun struct {
	RawResponse string            `json:"rawResponse"`
	Parsed      *GeometryResponse `json:"parsed,omitempty"`
	ScaleMethod string            `json:"scaleMethod"`
	HeightM     float64           `json:"heightM"`
}

// FillRun is the audit record of one fill trial.
type FillRun struct {
	RawResponse string        `json:"rawResponse"`
	Parsed      *FillResponse `json:"parsed,omitempty"`
}

// Result is the combined outcome of a full analysis. Field names and
// rounding (height and fill fields to 3 decimals, volume to 4, tonnage
// to 2) are part of the cross-implementation contract.
type Result struct {
	HeightM          float64       `json:"heightM"`
	FillRatioL       float64       `json:"fillRatioL"`
	FillRatioW       float64       `json:"fillRatioW"`
	TaperRatio       float64       `json:"taperRatio"`
	PackingDensity   float64       `json:"packingDensity"`
	EffectivePacking float64       `json:"effectivePacking"`
	Volume           float64       `json:"volume"`
	Tonnage          float64       `json:"tonnage"`
	Density          float64       `json:"density"`
	MaterialType     string        `json:"materialType"`
	Reasoning        string        `json:"reasoning"`
	GeometryRuns     []GeometryRun `json:"geometryRuns"`
	FillRuns         []FillRun     `json:"fillRuns"`
}

// Analyze runs the full ensemble analysis against the sender.
//
// The geometry round combines per-trial heights by upper median; the fill
// round combines each scalar by arithmetic mean clamped to its declared
// range. The material type is the mode of the per-trial votes with
// first-occurrence tie-break, falling back to cfg.MaterialType when no
// trial voted; the reasoning is the last trial's (last-write-wins). Trials
// run strictly in sequence so both tie-breaks are deterministic.
func Analyze(ctx context.Context, doc *spec.Document, sender Sender, images [][]byte, cfg Config) (*Result, error) {
	bedHeight := doc.BedHeight(cfg.TruckClass)

	var heights []float64
	geometryRuns := make([]GeometryRun, 0, cfg.EnsembleCount)

	for range cfg.EnsembleCount {
		run := geometryTrial(ctx, doc, sender, images, bedHeight)
		if run.ScaleMethod == OutcomeTailgate || run.ScaleMethod == OutcomePlate {
			heights = append(heights, run.HeightM)
		}
		geometryRuns = append(geometryRuns, run)
	}

	// A single valid trial is sufficient; the fill round is not attempted
	// when the whole geometry round failed.
	if len(heights) == 0 {
		return nil, ErrNoValidGeometry
	}
	height := median(heights)

	var fillL, fillW, taper, packing []float64
	var votes []string
	reasoning := ""
	fillRuns := make([]FillRun, 0, cfg.EnsembleCount)

	for range cfg.EnsembleCount {
		run := fillTrial(ctx, doc, sender, images)
		fillRuns = append(fillRuns, run)
		if run.Parsed == nil {
			continue
		}
		f := run.Parsed
		fillL = append(fillL, f.FillRatioL)
		fillW = append(fillW, f.FillRatioW)
		taper = append(taper, f.TaperRatio)
		packing = append(packing, f.PackingDensity)
		if f.MaterialType != "" && f.MaterialType != "?" {
			votes = append(votes, f.MaterialType)
		}
		if f.Reasoning != "" {
			reasoning = f.Reasoning
		}
	}
	if len(fillL) == 0 {
		return nil, ErrNoValidFill
	}

	r := doc.Ranges
	params := calculation.CoreParams{
		Height:         height,
		FillRatioL:     validation.ClampValue(average(fillL), r.FillRatioL.Min, r.FillRatioL.Max),
		FillRatioW:     validation.ClampValue(average(fillW), r.FillRatioW.Min, r.FillRatioW.Max),
		TaperRatio:     validation.ClampValue(average(taper), r.TaperRatio.Min, r.TaperRatio.Max),
		PackingDensity: validation.ClampValue(average(packing), r.PackingDensity.Min, r.PackingDensity.Max),
		MaterialType:   cfg.MaterialType,
	}
	if voted := modeString(votes); voted != "" {
		params.MaterialType = voted
	}

	calc := calculation.Calculate(doc, params, cfg.TruckClass)

	return &Result{
		HeightM:    calculation.Round3(height),
		FillRatioL: calculation.Round3(params.FillRatioL),
		FillRatioW: calculation.Round3(params.FillRatioW),
		TaperRatio: calculation.Round3(params.TaperRatio),
		// The raw averaged packing input is intentionally discarded in
		// favor of the compression-corrected value.
		PackingDensity:   calculation.Round3(calc.EffectivePacking),
		EffectivePacking: calculation.Round3(calc.EffectivePacking),
		Volume:           calculation.Round4(calc.Volume),
		Tonnage:          calculation.Round2(calc.Tonnage),
		Density:          calc.Density,
		MaterialType:     params.MaterialType,
		Reasoning:        reasoning,
		GeometryRuns:     geometryRuns,
		FillRuns:         fillRuns,
	}, nil
}

func geometryTrial(ctx context.Context, doc *spec.Document, sender Sender, images [][]byte, bedHeight float64) GeometryRun {
	raw, err := sender.Send(ctx, doc.GeometryPrompt, images)
	if err != nil {
		return GeometryRun{ScaleMethod: OutcomeError}
	}

	geo, err := formatting.Parse[GeometryResponse](raw)
	if err != nil {
		return GeometryRun{RawResponse: raw, ScaleMethod: OutcomeParseError}
	}

	// A non-positive tailgate top means the bed rim was not located, which
	// both scale methods depend on.
	if geo.TailgateTopY <= 0 {
		return GeometryRun{RawResponse: raw, Parsed: &geo, ScaleMethod: OutcomeNone}
	}

	h, method := geometry.ResolveHeight(
		geo.TailgateTopY,
		geo.TailgateBottomY,
		geo.CargoTopY,
		geo.PlateBox,
		bedHeight,
		&doc.Constants,
	)
	if method == geometry.MethodNone {
		return GeometryRun{RawResponse: raw, Parsed: &geo, ScaleMethod: OutcomeNone}
	}

	return GeometryRun{
		RawResponse: raw,
		Parsed:      &geo,
		ScaleMethod: string(method),
		HeightM:     h,
	}
}

func fillTrial(ctx context.Context, doc *spec.Document, sender Sender, images [][]byte) FillRun {
	raw, err := sender.Send(ctx, doc.FillPrompt, images)
	if err != nil {
		return FillRun{}
	}

	fill, err := formatting.Parse[FillResponse](raw)
	if err != nil {
		return FillRun{RawResponse: raw}
	}

	return FillRun{RawResponse: raw, Parsed: &fill}
}
