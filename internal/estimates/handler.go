package estimates

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tonsuu/tonsuu/pkg/handlers"
	"github.com/tonsuu/tonsuu/pkg/routes"
	"github.com/tonsuu/tonsuu/pkg/validation"
)

// Handler provides HTTP endpoints for estimation operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "estimates"),
	}
}

// Routes returns the route group definition for estimation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/estimates",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
			{Method: "POST", Pattern: "/calculate", Handler: h.Calculate},
			{Method: "POST", Pattern: "/validate", Handler: h.Validate},
		},
	}
}

// SpecRoutes returns the route group exposing the active estimation spec.
func (h *Handler) SpecRoutes() routes.Group {
	return routes.Group{
		Prefix: "/spec",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Spec},
		},
	}
}

// Analyze runs the full ensemble analysis on the submitted images.
// Returns 201 with the estimate on success.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var cmd AnalyzeCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	estimate, err := h.sys.Analyze(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, estimate)
}

// Calculate runs the tonnage formula on explicit parameters.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var cmd CalculateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Calculate(cmd))
}

// Validate checks a parameter set against the spec ranges.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var params validation.Params
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, h.sys.Validate(params))
}

// Spec returns the active estimation spec document.
func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Spec())
}
