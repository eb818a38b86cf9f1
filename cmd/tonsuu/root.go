package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/spec"
)

var specPath string

// rootCmd is the tonsuu command line entry point.
var rootCmd = &cobra.Command{
	Use:   "tonsuu",
	Short: "Dump truck cargo tonnage estimation",
	Long: `Estimate dump truck cargo tonnage from bed photos.

An ensemble of vision model trials resolves the cargo height and fill
geometry, and the tonnage formula converts them to a weight estimate.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&specPath, "spec", "", "path to an estimation spec document (defaults to the embedded spec)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(specCmd)
	rootCmd.AddCommand(promptsCmd)
}

// loadSpec resolves the spec document from the --spec flag, the service
// configuration, or the embedded default, in that order.
func loadSpec(cfg *config.Config) (*spec.Document, error) {
	path := specPath
	if path == "" {
		path = cfg.Pipeline.SpecPath
	}
	if path == "" {
		return spec.Default(), nil
	}

	doc, err := spec.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load spec %s: %w", path, err)
	}
	return doc, nil
}
