package config

import (
	"fmt"
	"os"

	"github.com/tonsuu/tonsuu/pkg/formatting"
	"github.com/tonsuu/tonsuu/pkg/middleware"
	"github.com/tonsuu/tonsuu/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "TONSUU_CORS_ENABLED",
	Origins:          "TONSUU_CORS_ORIGINS",
	AllowedMethods:   "TONSUU_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "TONSUU_CORS_ALLOWED_HEADERS",
	AllowCredentials: "TONSUU_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "TONSUU_CORS_MAX_AGE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "TONSUU_DOCS_TITLE",
	Description: "TONSUU_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, CORS, and request size settings.
type APIConfig struct {
	BasePath string                `toml:"base_path"`
	MaxBody  string                `toml:"max_body"`
	CORS     middleware.CORSConfig `toml:"cors"`
	Docs     openapi.Config        `toml:"docs"`
}

// MaxBodyBytes returns MaxBody parsed as a byte count. Requests carry
// base64 image payloads, so the fallback is sized for several photos.
func (c *APIConfig) MaxBodyBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBody)
	if err != nil {
		return 50 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBody != "" {
		c.MaxBody = overlay.MaxBody
	}

	c.CORS.Merge(&overlay.CORS)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBody == "" {
		c.MaxBody = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("TONSUU_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("TONSUU_API_MAX_BODY"); v != "" {
		c.MaxBody = v
	}
}
