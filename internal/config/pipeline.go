package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvPipelineTruckClass    = "TONSUU_PIPELINE_TRUCK_CLASS"
	EnvPipelineMaterialType  = "TONSUU_PIPELINE_MATERIAL_TYPE"
	EnvPipelineEnsembleCount = "TONSUU_PIPELINE_ENSEMBLE_COUNT"
	EnvPipelineSpecPath      = "TONSUU_PIPELINE_SPEC_PATH"
)

// PipelineConfig holds the default estimation parameters. Requests may
// override truck class, material, and ensemble count per call.
type PipelineConfig struct {
	TruckClass    string `toml:"truck_class"`
	MaterialType  string `toml:"material_type"`
	EnsembleCount int    `toml:"ensemble_count"`
	SpecPath      string `toml:"spec_path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.TruckClass != "" {
		c.TruckClass = overlay.TruckClass
	}
	if overlay.MaterialType != "" {
		c.MaterialType = overlay.MaterialType
	}
	if overlay.EnsembleCount != 0 {
		c.EnsembleCount = overlay.EnsembleCount
	}
	if overlay.SpecPath != "" {
		c.SpecPath = overlay.SpecPath
	}
}

func (c *PipelineConfig) loadDefaults() {
	if c.TruckClass == "" {
		c.TruckClass = "4t"
	}
	if c.MaterialType == "" {
		c.MaterialType = "As殻"
	}
	if c.EnsembleCount == 0 {
		c.EnsembleCount = 3
	}
}

func (c *PipelineConfig) loadEnv() {
	if v := os.Getenv(EnvPipelineTruckClass); v != "" {
		c.TruckClass = v
	}
	if v := os.Getenv(EnvPipelineMaterialType); v != "" {
		c.MaterialType = v
	}
	if v := os.Getenv(EnvPipelineEnsembleCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EnsembleCount = n
		}
	}
	if v := os.Getenv(EnvPipelineSpecPath); v != "" {
		c.SpecPath = v
	}
}

func (c *PipelineConfig) validate() error {
	if c.EnsembleCount < 1 {
		return fmt.Errorf("invalid ensemble_count: %d", c.EnsembleCount)
	}
	return nil
}
