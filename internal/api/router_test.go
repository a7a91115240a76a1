package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/wonny/revenue-risk/internal/api/handlers"
	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/insight"
	"github.com/wonny/revenue-risk/internal/pipeline"
	"github.com/wonny/revenue-risk/internal/pipelineconfig"
	"github.com/wonny/revenue-risk/internal/series"
	"github.com/wonny/revenue-risk/pkg/logger"
	"github.com/wonny/revenue-risk/pkg/metrics"
)

const crashCSV = "date,revenue\n" +
	"2023-01-31,8000\n2023-02-28,2000\n2023-03-31,7000\n2023-04-30,1500\n2023-05-31,6000\n" +
	"2023-06-30,1000\n2023-07-31,1200\n2023-08-31,1500\n2023-09-30,1900\n2023-10-31,2400\n"

func newTestRouter(t *testing.T, limiter *rate.Limiter, maxUpload int64) http.Handler {
	t.Helper()
	log := logger.Nop()
	rec := metrics.New()
	orchestrator := pipeline.New(pipelineconfig.Default(), log,
		pipeline.WithNarrator(insight.NewNarrator()),
		pipeline.WithRecorder(rec),
	)
	handler := handlers.NewPipelineHandler(orchestrator, series.NewPreparer(log.Zerolog()), maxUpload, log)

	return NewRouter(RouterDeps{
		Pipeline: handler,
		Metrics:  rec,
		Limiter:  limiter,
		Logger:   log,
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(t, nil, 1<<20), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestForecast_RawCSVBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/forecast?horizon=3", strings.NewReader(crashCSV))
	req.Header.Set("Content-Type", "text/csv")

	rec := serve(newTestRouter(t, nil, 1<<20), req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp contracts.ForecastResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Predictions, 3)
	assert.Len(t, resp.Lower, 3)
	assert.Len(t, resp.Upper, 3)
	assert.Equal(t, contracts.RiskHigh, resp.Risk)
	require.NotNil(t, resp.Scenario)
	assert.Equal(t, "growth-forecast-high-risk", *resp.Scenario)
	assert.NotEmpty(t, resp.ConsistencyExplanation)
	assert.Contains(t, resp.Insight, "Risk Assessment")
}

func TestForecast_MultipartUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "sales.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("date,revenue\n2024-01-31,1000\n2024-02-29,1050\n2024-03-31,1100\n2024-04-30,1150\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/forecast?horizon=2", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := serve(newTestRouter(t, nil, 1<<20), req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["predictions"], 2)
	assert.Nil(t, resp["scenario"])
	assert.Equal(t, "Low", resp["risk"])
}

func TestForecast_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"horizon out of range", "/api/forecast?horizon=5", crashCSV, http.StatusBadRequest},
		{"horizon not a number", "/api/forecast?horizon=abc", crashCSV, http.StatusBadRequest},
		{"missing columns", "/api/forecast", "day,sales\n2024-01-31,10\n", http.StatusBadRequest},
		{"empty body", "/api/forecast", "", http.StatusBadRequest},
		{"non-positive month", "/api/forecast", "date,revenue\n2024-01-31,0\n", http.StatusBadRequest},
	}

	router := newTestRouter(t, nil, 1<<20)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "text/csv")

			rec := serve(router, req)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestForecast_UploadTooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(crashCSV))
	req.Header.Set("Content-Type", "text/csv")

	rec := serve(newTestRouter(t, nil, 32), req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRisk(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/risk", strings.NewReader(crashCSV))
	rec := serve(newTestRouter(t, nil, 1<<20), req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp contracts.RiskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, contracts.RiskHigh, resp.Risk)
	assert.GreaterOrEqual(t, resp.CompositeScore, 60.0)
}

func TestConfig(t *testing.T) {
	rec := serve(newTestRouter(t, nil, 1<<20), httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Config pipelineconfig.Config `json:"config"`
		Hash   string                `json:"hash"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, pipelineconfig.Default(), resp.Config)
	assert.Len(t, resp.Hash, 64)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, rate.NewLimiter(rate.Limit(0.001), 1), 1<<20)

	first := serve(router, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	second := serve(router, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// /health 는 제한 대상 아님
	health := serve(router, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderRequestID, "req-123")

	rec := serve(newTestRouter(t, nil, 1<<20), req)
	assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(crashCSV))
	require.Equal(t, http.StatusOK, serve(router, req).Code)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `revenue_pipeline_runs_total{outcome="success",risk_label="High"} 1`)
	assert.Contains(t, rec.Body.String(), `revenue_consistency_annotations_total{scenario="growth-forecast-high-risk"} 1`)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
