package api

import (
	"net/http"

	"github.com/tonsuu/tonsuu/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	handler := domain.Estimates.Handler()
	routes.Register(
		mux,
		handler.Routes(),
		handler.SpecRoutes(),
	)
}
