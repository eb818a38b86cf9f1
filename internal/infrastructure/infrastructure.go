// Package infrastructure provides core service initialization for
// application startup. It assembles the common dependencies (logging,
// lifecycle, estimation spec) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/pkg/lifecycle"
	"github.com/tonsuu/tonsuu/pkg/spec"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Spec      *spec.Document
}

// New creates an Infrastructure from the application configuration. The
// estimation spec loads from pipeline.spec_path when set, otherwise the
// embedded document is used.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	doc := spec.Default()
	if path := cfg.Pipeline.SpecPath; path != "" {
		loaded, err := spec.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load spec %s: %w", path, err)
		}
		doc = loaded
		logger.Info("estimation spec loaded", "path", path, "version", doc.Version)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Spec:      doc,
	}, nil
}
