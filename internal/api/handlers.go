package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/finplan/household-planner/internal/calculation"
	"github.com/finplan/household-planner/internal/config"
	"github.com/finplan/household-planner/internal/domain"
	"github.com/finplan/household-planner/internal/output"
)

// Handler holds the dependencies for the HTTP handlers.
type Handler struct {
	Engine *calculation.Engine
	Parser *config.InputParser
}

// NewHandler creates a handler backed by the given engine.
func NewHandler(engine *calculation.Engine) *Handler {
	return &Handler{
		Engine: engine,
		Parser: config.NewInputParser(),
	}
}

// SimulateRequest is the POST /api/simulate body.
type SimulateRequest struct {
	Plan domain.Plan `json:"plan"`
	// InflationAdjusted reports all amounts in start-year dollars.
	InflationAdjusted bool `json:"inflation_adjusted,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Simulate runs a full projection for the posted plan.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.Engine.Run(r.Context(), &req.Plan)
	if err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.InflationAdjusted {
		result = output.DeflateResult(result, req.Plan.Assumptions.Inflation)
	}
	writeJSON(w, http.StatusOK, result)
}

// ExamplePlan returns a complete starter plan.
func (h *Handler) ExamplePlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Parser.CreateExamplePlan())
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
