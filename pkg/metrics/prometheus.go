package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wonny/revenue-risk/internal/contracts"
)

const namespace = "revenue"

// Recorder Prometheus 지표 수집기
// ⭐ SSOT: 메트릭 이름/라벨은 여기서만 정의. 전역 레지스트리 대신 자체 레지스트리 사용
type Recorder struct {
	registry *prometheus.Registry

	runsTotal        *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	degradedTotal    prometheus.Counter
	annotationsTotal *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder with its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of pipeline runs by outcome and risk label",
			},
			[]string{"outcome", "risk_label"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"stage"},
		),
		degradedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecast_degraded_total",
				Help:      "Total number of forecasts produced in last-value fallback mode",
			},
		),
		annotationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "consistency_annotations_total",
				Help:      "Total number of consistency annotations by scenario",
			},
			[]string{"scenario"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
	}
}

// ObserveStage records the duration of one pipeline stage
func (r *Recorder) ObserveStage(stage contracts.Stage, d time.Duration) {
	r.stageDuration.WithLabelValues(stage.String()).Observe(d.Seconds())
}

// RecordRun records a finished pipeline run (label 은 실패 시 빈 값)
func (r *Recorder) RecordRun(outcome string, label contracts.RiskLabel) {
	if label == "" {
		label = "none"
	}
	r.runsTotal.WithLabelValues(outcome, label.String()).Inc()
}

// RecordDegraded records a fallback forecast
func (r *Recorder) RecordDegraded() {
	r.degradedTotal.Inc()
}

// RecordAnnotation records a consistency annotation
func (r *Recorder) RecordAnnotation(scenario contracts.Scenario) {
	r.annotationsTotal.WithLabelValues(string(scenario)).Inc()
}

// RecordHTTP records one HTTP request (route 는 템플릿 경로만 사용)
func (r *Recorder) RecordHTTP(route, method, status string, d time.Duration) {
	r.httpRequests.WithLabelValues(route, method, status).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
