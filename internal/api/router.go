package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/revenue-risk/internal/api/handlers"
	"github.com/wonny/revenue-risk/pkg/logger"
	"github.com/wonny/revenue-risk/pkg/metrics"
)

// RouterDeps 라우터 구성 요소
// Metrics 가 nil 이면 /metrics 와 HTTP 지표 수집을 비활성
type RouterDeps struct {
	Pipeline *handlers.PipelineHandler
	Metrics  *metrics.Recorder
	Limiter  *rate.Limiter
	Logger   *logger.Logger
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// Metrics
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/forecast", deps.Pipeline.Forecast).Methods(http.MethodPost)
	api.HandleFunc("/risk", deps.Pipeline.Risk).Methods(http.MethodPost)
	api.HandleFunc("/config", deps.Pipeline.Config).Methods(http.MethodGet)
	if deps.Limiter != nil {
		api.Use(rateLimitMiddleware(deps.Limiter))
	}

	// Apply middleware (순서: request id → logging → recovery)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(deps.Logger, deps.Metrics))
	r.Use(recoveryMiddleware(deps.Logger))

	return r
}
