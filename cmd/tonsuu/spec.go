package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/spec"
)

var specSummary bool

// specCmd prints the active estimation spec document.
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the active estimation spec",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		doc, err := loadSpec(cfg)
		if err != nil {
			return err
		}

		if specSummary {
			printSpecSummary(cmd.OutOrStdout(), doc)
			return nil
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

func init() {
	specCmd.Flags().BoolVar(&specSummary, "summary", false, "print a readable summary instead of JSON")
}

func printSpecSummary(out io.Writer, doc *spec.Document) {
	fmt.Fprintf(out, "spec %s\n", doc.Version)

	fmt.Fprintln(out, "材質密度 (t/m³):")
	names := make([]string, 0, len(doc.Materials))
	for name := range doc.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.1f\n", name, doc.MaterialDensity(name))
	}

	fmt.Fprintln(out, "荷台面積 (m²):")
	classes := make([]string, 0, len(doc.TruckSpecs))
	for class := range doc.TruckSpecs {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	for _, class := range classes {
		fmt.Fprintf(out, "  %s: %.2f\n", class, doc.BedArea(class))
	}

	fmt.Fprintf(out, "較正高さ: 後板 %.2f m / ヒンジ %.2f m\n", doc.BackPanelHeight(), doc.HingeHeight())
}

// promptsCmd prints the geometry and fill prompts sent to the model.
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Print the estimation prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		doc, err := loadSpec(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "--- geometry ---")
		fmt.Fprintln(out, doc.GeometryPrompt)
		fmt.Fprintln(out, "--- fill ---")
		fmt.Fprintln(out, doc.FillPrompt)
		return nil
	},
}
