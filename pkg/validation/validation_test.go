package validation_test

import (
	"testing"

	"github.com/tonsuu/tonsuu/pkg/spec"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

func ptr(v float64) *float64 { return &v }

func validParams() validation.Params {
	return validation.Params{
		UpperArea:      ptr(0.4),
		Height:         ptr(0.45),
		Slope:          ptr(0.1),
		FillRatioL:     ptr(0.9),
		FillRatioW:     ptr(0.9),
		FillRatioZ:     ptr(0.85),
		TaperRatio:     ptr(0.85),
		PackingDensity: ptr(0.7),
	}
}

func TestValidate(t *testing.T) {
	doc := spec.Default()

	t.Run("valid params produce no violations", func(t *testing.T) {
		if v := validation.Validate(doc, validParams()); len(v) != 0 {
			t.Errorf("violations = %v, want none", v)
		}
	})

	t.Run("out of range height", func(t *testing.T) {
		p := validParams()
		p.Height = ptr(1.5)
		v := validation.Validate(doc, p)
		if len(v) != 1 {
			t.Fatalf("violations = %v, want exactly one", v)
		}
		if v[0].Field != "height" {
			t.Errorf("Field = %q, want height", v[0].Field)
		}
	})

	t.Run("out of range packing density", func(t *testing.T) {
		p := validParams()
		p.PackingDensity = ptr(0.3)
		v := validation.Validate(doc, p)
		if len(v) != 1 || v[0].Field != "packingDensity" {
			t.Errorf("violations = %v, want one for packingDensity", v)
		}
	})

	t.Run("out of range taper ratio", func(t *testing.T) {
		taper, fillL, fillW, height, packing := 0.2, 0.8, 0.7, 0.45, 0.7
		p := validation.Params{
			Height:         &height,
			FillRatioL:     &fillL,
			FillRatioW:     &fillW,
			TaperRatio:     &taper,
			PackingDensity: &packing,
		}
		v := validation.Validate(doc, p)
		if len(v) != 1 || v[0].Field != "taperRatio" {
			t.Fatalf("violations = %v, want one for taperRatio", v)
		}
		if v[0].Min != doc.Ranges.TaperRatio.Min || v[0].Max != doc.Ranges.TaperRatio.Max {
			t.Errorf("range = [%v, %v], want [%v, %v]",
				v[0].Min, v[0].Max, doc.Ranges.TaperRatio.Min, doc.Ranges.TaperRatio.Max)
		}
	})

	t.Run("multiple violations", func(t *testing.T) {
		p := validParams()
		p.Height = ptr(-0.1)
		p.Slope = ptr(0.5)
		if v := validation.Validate(doc, p); len(v) != 2 {
			t.Errorf("violations = %v, want two", v)
		}
	})

	t.Run("nil fields are skipped", func(t *testing.T) {
		if v := validation.Validate(doc, validation.Params{}); len(v) != 0 {
			t.Errorf("violations = %v, want none", v)
		}
	})

	t.Run("boundary values are valid", func(t *testing.T) {
		r := doc.Ranges
		p := validation.Params{
			UpperArea:      ptr(r.UpperArea.Min),
			Height:         ptr(r.Height.Max),
			Slope:          ptr(r.Slope.Min),
			FillRatioL:     ptr(r.FillRatioL.Max),
			FillRatioW:     ptr(r.FillRatioW.Min),
			FillRatioZ:     ptr(r.FillRatioZ.Min),
			PackingDensity: ptr(r.PackingDensity.Max),
		}
		if v := validation.Validate(doc, p); len(v) != 0 {
			t.Errorf("boundary violations = %v, want none", v)
		}
	})
}

func TestClamp(t *testing.T) {
	doc := spec.Default()

	t.Run("clamps every field", func(t *testing.T) {
		p := validation.Params{
			UpperArea:      ptr(0.1),
			Height:         ptr(1.0),
			Slope:          ptr(0.5),
			FillRatioL:     ptr(-0.1),
			FillRatioW:     ptr(1.5),
			FillRatioZ:     ptr(0.5),
			TaperRatio:     ptr(0.2),
			PackingDensity: ptr(0.3),
		}
		r := doc.Ranges
		clamped := validation.Clamp(doc, p)

		want := map[string][2]float64{
			"upperArea":      {*clamped.UpperArea, r.UpperArea.Min},
			"height":         {*clamped.Height, r.Height.Max},
			"slope":          {*clamped.Slope, r.Slope.Max},
			"fillRatioL":     {*clamped.FillRatioL, r.FillRatioL.Min},
			"fillRatioW":     {*clamped.FillRatioW, r.FillRatioW.Max},
			"fillRatioZ":     {*clamped.FillRatioZ, r.FillRatioZ.Min},
			"taperRatio":     {*clamped.TaperRatio, r.TaperRatio.Min},
			"packingDensity": {*clamped.PackingDensity, r.PackingDensity.Min},
		}
		for field, pair := range want {
			if pair[0] != pair[1] {
				t.Errorf("%s = %v, want %v", field, pair[0], pair[1])
			}
		}
	})

	t.Run("nil fields remain nil", func(t *testing.T) {
		clamped := validation.Clamp(doc, validation.Params{Height: ptr(0.4)})
		if clamped.UpperArea != nil || clamped.Slope != nil {
			t.Error("nil fields were populated")
		}
		if clamped.Height == nil || *clamped.Height != 0.4 {
			t.Errorf("Height = %v, want 0.4", clamped.Height)
		}
	})

	t.Run("validate after clamp is clean", func(t *testing.T) {
		p := validation.Params{
			UpperArea:      ptr(-5),
			Height:         ptr(100),
			Slope:          ptr(2),
			FillRatioL:     ptr(7),
			FillRatioW:     ptr(-2),
			FillRatioZ:     ptr(0),
			PackingDensity: ptr(9),
		}
		if v := validation.Validate(doc, validation.Clamp(doc, p)); len(v) != 0 {
			t.Errorf("violations after clamp = %v, want none", v)
		}
	})
}

func TestClampValue(t *testing.T) {
	if got := validation.ClampValue(0.5, 0, 1); got != 0.5 {
		t.Errorf("in-range value changed: %v", got)
	}
	if got := validation.ClampValue(-1, 0, 1); got != 0 {
		t.Errorf("below-min = %v, want 0", got)
	}
	if got := validation.ClampValue(2, 0, 1); got != 1 {
		t.Errorf("above-max = %v, want 1", got)
	}
}
