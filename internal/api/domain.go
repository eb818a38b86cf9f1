package api

import (
	"github.com/tonsuu/tonsuu/internal/config"
	"github.com/tonsuu/tonsuu/internal/estimates"
	"github.com/tonsuu/tonsuu/internal/infrastructure"
	"github.com/tonsuu/tonsuu/pkg/pipeline"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Estimates estimates.System
}

// NewDomain creates all domain systems from the infrastructure and sender.
func NewDomain(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
	sender pipeline.Sender,
) *Domain {
	return &Domain{
		Estimates: estimates.NewSystem(
			infra.Spec,
			sender,
			infra.Logger.With("module", "api"),
			cfg.Pipeline,
		),
	}
}
