package main

import (
	"strings"
	"testing"

	"github.com/tonsuu/tonsuu/pkg/spec"
)

func TestPrintSpecSummary(t *testing.T) {
	doc := spec.Default()

	var sb strings.Builder
	printSpecSummary(&sb, doc)
	out := sb.String()

	t.Run("header carries the document version", func(t *testing.T) {
		if !strings.Contains(out, "spec "+doc.Version) {
			t.Errorf("output missing version %q:\n%s", doc.Version, out)
		}
	})

	t.Run("lists every material with its density", func(t *testing.T) {
		if !strings.Contains(out, "As殻: 2.5") || !strings.Contains(out, "土砂: 1.8") {
			t.Errorf("output missing material densities:\n%s", out)
		}
	})

	t.Run("lists every truck class bed area", func(t *testing.T) {
		for class := range doc.TruckSpecs {
			if !strings.Contains(out, class+": ") {
				t.Errorf("output missing truck class %q:\n%s", class, out)
			}
		}
	})

	t.Run("calibration landmark heights", func(t *testing.T) {
		if !strings.Contains(out, "後板 0.30") || !strings.Contains(out, "ヒンジ 0.60") {
			t.Errorf("output missing calibration heights:\n%s", out)
		}
	})
}
