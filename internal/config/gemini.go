package config

import (
	"fmt"
	"os"
)

const (
	EnvGeminiAPIKey = "TONSUU_GEMINI_API_KEY"
	EnvGeminiModel  = "TONSUU_GEMINI_MODEL"
)

// GeminiConfig holds the Gemini vision model settings. The API key is
// environment-only and never read from TOML.
type GeminiConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"-"`
}

// Finalize applies defaults, environment variable overrides, and validation.
// A missing API key is not an error here so that offline commands can still
// load config; the sender constructor rejects it instead.
func (c *GeminiConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *GeminiConfig) Merge(overlay *GeminiConfig) {
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
}

func (c *GeminiConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.0-flash"
	}
}

func (c *GeminiConfig) loadEnv() {
	if v := os.Getenv(EnvGeminiModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.APIKey = v
	}
}

func (c *GeminiConfig) validate() error {
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	return nil
}
