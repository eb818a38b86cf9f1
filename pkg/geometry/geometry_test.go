package geometry_test

import (
	"math"
	"testing"

	"github.com/tonsuu/tonsuu/pkg/geometry"
	"github.com/tonsuu/tonsuu/pkg/spec"
)

func constants() *spec.Constants {
	c := spec.Default().Constants
	return &c
}

func TestResolveHeight(t *testing.T) {
	c := constants()

	t.Run("tailgate reference", func(t *testing.T) {
		// span 0.2 maps to 0.32m, so scale = 1.6 and height = 0.3 * 1.6 = 0.48
		h, method := geometry.ResolveHeight(0.3, 0.5, 0.2, nil, 0.32, c)
		if method != geometry.MethodTailgate {
			t.Errorf("method = %q, want tailgate", method)
		}
		if math.Abs(h-0.48) > 0.01 {
			t.Errorf("height = %v, want ~0.48", h)
		}
	})

	t.Run("tailgate preferred over plate", func(t *testing.T) {
		plate := &[4]float64{0.4, 0.7, 0.6, 0.84}
		_, method := geometry.ResolveHeight(0.3, 0.5, 0.2, plate, 0.32, c)
		if method != geometry.MethodTailgate {
			t.Errorf("method = %q, want tailgate", method)
		}
	})

	t.Run("plate fallback", func(t *testing.T) {
		// tailgate bottom 0 is degenerate; plate height 0.14 → scale ≈ 1.571,
		// height = 0.32 + 0.15 * 1.571 ≈ 0.556
		plate := &[4]float64{0.4, 0.7, 0.6, 0.84}
		h, method := geometry.ResolveHeight(0.3, 0.0, 0.15, plate, 0.32, c)
		if method != geometry.MethodPlate {
			t.Errorf("method = %q, want plate", method)
		}
		if h <= 0.4 || h >= 0.8 {
			t.Errorf("height = %v, want within (0.4, 0.8)", h)
		}
	})

	t.Run("spurious plate box rejected", func(t *testing.T) {
		plate := &[4]float64{0.4, 0.7, 0.6, 0.7}
		h, method := geometry.ResolveHeight(0.3, 0.0, 0.15, plate, 0.32, c)
		if method != geometry.MethodNone {
			t.Errorf("method = %q, want none", method)
		}
		if h != 0 {
			t.Errorf("height = %v, want 0", h)
		}
	})

	t.Run("no reference", func(t *testing.T) {
		h, method := geometry.ResolveHeight(0.3, 0.0, 0.2, nil, 0.32, c)
		if method != geometry.MethodNone {
			t.Errorf("method = %q, want none", method)
		}
		if h != 0 {
			t.Errorf("height = %v, want 0", h)
		}
	})

	t.Run("inverted tailgate rejected", func(t *testing.T) {
		_, method := geometry.ResolveHeight(0.5, 0.3, 0.2, nil, 0.32, c)
		if method != geometry.MethodNone {
			t.Errorf("method = %q, want none", method)
		}
	})

	t.Run("height clamped to ceiling", func(t *testing.T) {
		h, _ := geometry.ResolveHeight(0.5, 0.9, 0.0, nil, 0.50, c)
		if h > 0.8 {
			t.Errorf("height = %v, want <= 0.8", h)
		}
	})

	t.Run("cargo below bed floor clamps to zero", func(t *testing.T) {
		h, method := geometry.ResolveHeight(0.3, 0.5, 0.6, nil, 0.32, c)
		if method != geometry.MethodTailgate {
			t.Errorf("method = %q, want tailgate", method)
		}
		if h != 0 {
			t.Errorf("height = %v, want 0", h)
		}
	})
}
