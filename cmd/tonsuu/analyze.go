package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tonsuu/tonsuu/internal/ai"
	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/formatting"
	"github.com/tonsuu/tonsuu/pkg/pipeline"
)

var (
	analyzeTruck    string
	analyzeMaterial string
	analyzeEnsemble int
	analyzeModel    string
	analyzeJSON     bool
)

// analyzeCmd runs the full ensemble analysis on one or more bed photos.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>...",
	Short: "Estimate tonnage from bed photos",
	Long: `Run the ensemble estimation pipeline on one or more photos of a
loaded truck bed and print the tonnage estimate.

Requires TONSUU_GEMINI_API_KEY to be set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTruck, "truck", "", "truck class (2t, 3t, 4t, 10t)")
	analyzeCmd.Flags().StringVar(&analyzeMaterial, "material", "", "fallback material type")
	analyzeCmd.Flags().IntVar(&analyzeEnsemble, "ensemble", 0, "number of trials per estimation round")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "gemini model override")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	doc, err := loadSpec(cfg)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	images, err := loadImages(logger, args)
	if err != nil {
		return err
	}

	if analyzeModel != "" {
		cfg.Gemini.Model = analyzeModel
	}

	sender, err := ai.NewGemini(cmd.Context(), &cfg.Gemini)
	if err != nil {
		return err
	}
	defer sender.Close()

	pcfg := pipeline.Config{
		TruckClass:    cfg.Pipeline.TruckClass,
		MaterialType:  cfg.Pipeline.MaterialType,
		EnsembleCount: cfg.Pipeline.EnsembleCount,
	}
	if analyzeTruck != "" {
		pcfg.TruckClass = analyzeTruck
	}
	if analyzeMaterial != "" {
		pcfg.MaterialType = analyzeMaterial
	}
	if analyzeEnsemble > 0 {
		pcfg.EnsembleCount = analyzeEnsemble
	}

	result, err := pipeline.Analyze(cmd.Context(), doc, sender, images, pcfg)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "推定積載量: %.2f t\n", result.Tonnage)
	fmt.Fprintf(out, "  材質:       %s (%.1f t/m³)\n", result.MaterialType, result.Density)
	fmt.Fprintf(out, "  体積:       %.4f m³\n", result.Volume)
	fmt.Fprintf(out, "  荷物高さ:   %.3f m\n", result.HeightM)
	fmt.Fprintf(out, "  充填率 L/W: %.3f / %.3f\n", result.FillRatioL, result.FillRatioW)
	fmt.Fprintf(out, "  実効充填:   %.3f\n", result.EffectivePacking)
	if result.Reasoning != "" {
		fmt.Fprintf(out, "  根拠:       %s\n", result.Reasoning)
	}
	return nil
}

// loadImages reads all image files concurrently.
func loadImages(logger *slog.Logger, paths []string) ([][]byte, error) {
	images := make([][]byte, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read image %s: %w", path, err)
			}
			images[i] = data
			logger.Info("image loaded", "path", path, "size", formatting.FormatBytes(int64(len(data)), 1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
