// Package api assembles the API module with all domain systems and route
// registration.
package api

import (
	"net/http"

	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/internal/infrastructure"
	"github.com/tonsuu/tonsuu/pkg/middleware"
	"github.com/tonsuu/tonsuu/pkg/module"
	"github.com/tonsuu/tonsuu/pkg/pipeline"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	sender pipeline.Sender,
) (*module.Module, error) {
	domain := NewDomain(cfg, infra, sender)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)
	if err := registerDocs(mux, cfg); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBody(cfg.API.MaxBodyBytes()))
	m.Use(middleware.Logger(infra.Logger))

	return m, nil
}
