// Package geometry converts normalized image observations into a physical
// cargo height, selecting between the tailgate and license-plate scale
// references.
package geometry

import "github.com/tonsuu/tonsuu/pkg/spec"

// Method identifies the scale reference used to resolve a cargo height.
type Method string

// Scale reference methods.
const (
	MethodTailgate Method = "tailgate"
	MethodPlate    Method = "plate"
	MethodNone     Method = "none"
)

// maxCargoHeight is the practical ceiling for cargo height across the
// supported truck classes; resolved heights are clamped to it.
const maxCargoHeight = 0.8

// ResolveHeight converts normalized y-coordinates of the tailgate edges and
// cargo top, plus an optional license-plate bounding box [x1, y1, x2, y2],
// into a cargo height in meters above the bed floor.
//
// The tailgate is the preferred reference: its top-to-bottom span maps to
// the known bed height. When the tailgate observation is degenerate, the
// plate's known physical height supplies the scale instead, anchored at the
// tailgate top (the loading-bed rim). With no usable reference the height
// is 0 and the method is MethodNone.
func ResolveHeight(tgTop, tgBot, cargoTop float64, plateBox *[4]float64, bedHeight float64, c *spec.Constants) (float64, Method) {
	hasTailgate := tgBot > 0 && tgBot > tgTop

	plateNorm := 0.0
	if plateBox != nil {
		plateNorm = plateBox[3] - plateBox[1]
	}
	hasPlate := plateNorm > c.PlateMinNorm

	if !hasTailgate && !hasPlate {
		return 0, MethodNone
	}

	var height float64
	var method Method

	if hasTailgate {
		scale := bedHeight / (tgBot - tgTop)
		height = (tgBot - cargoTop) * scale
		method = MethodTailgate
	} else {
		scale := c.PlateHeightM / plateNorm
		height = bedHeight + (tgTop-cargoTop)*scale
		method = MethodPlate
	}

	return clamp(height, 0, maxCargoHeight), method
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
