package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/household-planner/internal/calculation"
	"github.com/finplan/household-planner/internal/config"
	"github.com/finplan/household-planner/internal/domain"
	"github.com/finplan/household-planner/internal/taxtable"
)

func newTestRouter() http.Handler {
	engine := calculation.NewEngine(taxtable.NewMemoryStore())
	return NewRouter(NewHandler(engine))
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestExamplePlan(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/example", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var plan domain.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	assert.NoError(t, plan.Validate())
}

func TestSimulate(t *testing.T) {
	plan := config.NewInputParser().CreateExamplePlan()
	body, err := json.Marshal(SimulateRequest{Plan: *plan})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result calculation.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, plan.Assumptions.ProjectionYears(), result.Summary.YearsSimulated)
	assert.NotEmpty(t, result.Years)
}

func TestSimulateRejectsInvalidPlan(t *testing.T) {
	plan := config.NewInputParser().CreateExamplePlan()
	plan.Assumptions.LifeExpectancy = 10 // below current age

	body, err := json.Marshal(SimulateRequest{Plan: *plan})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(body))
	newTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "life expectancy")
}

func TestSimulateRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader([]byte("{not json")))
	newTestRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulateInflationAdjusted(t *testing.T) {
	plan := config.NewInputParser().CreateExamplePlan()

	run := func(adjusted bool) calculation.RunResult {
		body, err := json.Marshal(SimulateRequest{Plan: *plan, InflationAdjusted: adjusted})
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewReader(body))
		newTestRouter().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var result calculation.RunResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		return result
	}

	nominal := run(false)
	real := run(true)

	last := len(nominal.Years) - 1
	assert.True(t, real.Years[last].NetWorth.LessThan(nominal.Years[last].NetWorth),
		"deflated amounts must be smaller under positive inflation")
}
