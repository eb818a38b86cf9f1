package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/calculation"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

var (
	calcTruck    string
	calcMaterial string
	calcHeight   float64
	calcFillL    float64
	calcFillW    float64
	calcTaper    float64
	calcPacking  float64
	calcJSON     bool
)

// calculateCmd runs the tonnage formula on explicit parameters without any
// model calls.
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute tonnage from explicit parameters",
	Long: `Compute tonnage directly from the box overlay formula using
explicit height and fill parameters, skipping the vision model entirely.`,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVar(&calcTruck, "truck", "", "truck class (2t, 3t, 4t, 10t)")
	calculateCmd.Flags().StringVar(&calcMaterial, "material", "", "material type")
	calculateCmd.Flags().Float64Var(&calcHeight, "height", 0, "cargo height above the bed rim in meters")
	calculateCmd.Flags().Float64Var(&calcFillL, "fill-l", 0.8, "lengthwise fill ratio")
	calculateCmd.Flags().Float64Var(&calcFillW, "fill-w", 0.7, "widthwise fill ratio at the top")
	calculateCmd.Flags().Float64Var(&calcTaper, "taper", 0.85, "taper ratio")
	calculateCmd.Flags().Float64Var(&calcPacking, "packing", 0.7, "packing density")
	calculateCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")

	calculateCmd.MarkFlagRequired("height")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := loadSpec(cfg)
	if err != nil {
		return err
	}

	truck := calcTruck
	if truck == "" {
		truck = cfg.Pipeline.TruckClass
	}
	material := calcMaterial
	if material == "" {
		material = cfg.Pipeline.MaterialType
	}

	params := calculation.CoreParams{
		Height:         calcHeight,
		FillRatioL:     calcFillL,
		FillRatioW:     calcFillW,
		TaperRatio:     calcTaper,
		PackingDensity: calcPacking,
		MaterialType:   material,
	}

	violations := validation.Validate(doc, validation.Params{
		Height:         &params.Height,
		FillRatioL:     &params.FillRatioL,
		FillRatioW:     &params.FillRatioW,
		TaperRatio:     &params.TaperRatio,
		PackingDensity: &params.PackingDensity,
	})
	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", v.Error())
	}

	result := calculation.Calculate(doc, params, truck)

	if calcJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "推定積載量: %.2f t\n", calculation.Round2(result.Tonnage))
	fmt.Fprintf(out, "  体積:     %.4f m³\n", calculation.Round4(result.Volume))
	fmt.Fprintf(out, "  密度:     %.1f t/m³ (%s)\n", result.Density, material)
	fmt.Fprintf(out, "  実効充填: %.3f\n", calculation.Round3(result.EffectivePacking))
	return nil
}
