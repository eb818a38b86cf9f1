// Package calculation implements the box-overlay tonnage formula:
//
//	effectiveL = fillRatioL × taperRatio
//	effectiveW = (BOTTOM_FILL + fillRatioW) / 2
//	volume = bedL × bedW × height × effectiveL × effectiveW
//	compression = 1 + COMPRESSION_FACTOR × (volume − COMPRESSION_REF_VOLUME)
//	effectivePacking = clamp(packing × compression, min, max)
//	tonnage = volume × density × effectivePacking
//
// Calculate is a pure function: identical inputs always produce
// bit-identical outputs, and there are no error conditions — unknown
// lookups fall back to defaults.
package calculation

import (
	"math"

	"github.com/tonsuu/tonsuu/pkg/spec"
)

// assumedBedLength approximates bed length when a truck class is unknown
// and only the default bed area is available.
const assumedBedLength = 3.4

// CoreParams are the resolved inputs of a single tonnage calculation.
type CoreParams struct {
	Height         float64 `json:"height"`
	FillRatioL     float64 `json:"fillRatioL"`
	FillRatioW     float64 `json:"fillRatioW"`
	TaperRatio     float64 `json:"taperRatio"`
	PackingDensity float64 `json:"packingDensity"`
	MaterialType   string  `json:"materialType"`
}

// TonnageResult is the immutable output of Calculate.
type TonnageResult struct {
	// Volume is the effective cargo volume in m³, rounded to 3 decimals.
	Volume float64 `json:"volume"`
	// Tonnage is the estimated mass in metric tons, rounded to 2 decimals.
	Tonnage float64 `json:"tonnage"`
	// EffectivePacking is the packing density after compression correction.
	EffectivePacking float64 `json:"effectivePacking"`
	// Density is the material density used.
	Density float64 `json:"density"`
}

// Calculate converts resolved geometric and fill parameters into volume and
// tonnage for the given truck class. An empty or unknown class falls back
// to the default bed area with an assumed length. Zero height yields
// exactly zero volume and tonnage.
func Calculate(doc *spec.Document, p CoreParams, truckClass string) TonnageResult {
	c := doc.Constants

	bedL, bedW := bedDimensions(doc, truckClass)

	effectiveL := p.FillRatioL * p.TaperRatio
	effectiveW := (c.BottomFill + p.FillRatioW) / 2
	volume := bedL * bedW * p.Height * effectiveL * effectiveW

	compression := 1 + c.CompressionFactor*(volume-c.CompressionRefVolume)
	effectivePacking := clamp(p.PackingDensity*compression, c.EffectivePackingMin, c.EffectivePackingMax)

	density := doc.MaterialDensity(p.MaterialType)
	tonnage := volume * density * effectivePacking

	return TonnageResult{
		Volume:           Round3(volume),
		Tonnage:          Round2(tonnage),
		EffectivePacking: Round3(effectivePacking),
		Density:          density,
	}
}

func bedDimensions(doc *spec.Document, truckClass string) (float64, float64) {
	if truckClass != "" {
		if t, ok := doc.Truck(truckClass); ok {
			return t.BedLength, t.BedWidth
		}
	}
	return assumedBedLength, doc.DefaultBedArea() / assumedBedLength
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places, half away from zero.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Round4 rounds to 4 decimal places, half away from zero.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
