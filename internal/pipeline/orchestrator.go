package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/revenue-risk/internal/consistency"
	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/forecast"
	"github.com/wonny/revenue-risk/internal/pipelineconfig"
	"github.com/wonny/revenue-risk/internal/risk"
	"github.com/wonny/revenue-risk/pkg/logger"
)

// 최근 변화율 계산 구간 (개월)
const (
	shortLookback = 3
	longLookback  = 6
)

// Orchestrator 예측 → 리스크 → 정합성 → 조립 파이프라인 조율
// ⭐ SSOT: 파이프라인 조율은 여기서만
//
//	Forecast ┐
//	         ├→ Consistency → Assemble
//	Risk     ┘
type Orchestrator struct {
	forecaster contracts.TrendForecaster
	scorer     contracts.RiskScorer
	validator  contracts.ConsistencyValidator
	narrator   contracts.Narrator

	config   pipelineconfig.Config
	recorder Recorder
	logger   *logger.Logger
}

// Option Orchestrator 선택 설정
type Option func(*Orchestrator)

// WithNarrator 서술형 인사이트 생성기 연결
func WithNarrator(n contracts.Narrator) Option {
	return func(o *Orchestrator) { o.narrator = n }
}

// WithRecorder 메트릭 수집기 연결
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.recorder = r
		}
	}
}

// NewOrchestrator 컴포넌트를 직접 주입해 생성
func NewOrchestrator(
	forecaster contracts.TrendForecaster,
	scorer contracts.RiskScorer,
	validator contracts.ConsistencyValidator,
	config pipelineconfig.Config,
	log *logger.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		forecaster: forecaster,
		scorer:     scorer,
		validator:  validator,
		config:     config,
		recorder:   nopRecorder{},
		logger:     log.WithField("component", "pipeline.orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New 설정값으로 기본 컴포넌트를 만들어 생성
func New(config pipelineconfig.Config, log *logger.Logger, opts ...Option) *Orchestrator {
	zlog := log.Zerolog()
	return NewOrchestrator(
		forecast.NewForecasterWithConfig(config.Forecast, zlog),
		risk.NewScorerWithConfig(config.Risk, zlog),
		consistency.NewValidatorWithConfig(config.Consistency, zlog),
		config,
		log,
		opts...,
	)
}

// Config 현재 설정
func (o *Orchestrator) Config() pipelineconfig.Config {
	return o.config
}

// Run 파이프라인 1회 실행
// 실패 시 단계 이름으로 감싼 오류만 반환 (부분 결과 없음)
func (o *Orchestrator) Run(ctx context.Context, series contracts.RevenueSeries, horizon int) (*contracts.PipelineResult, error) {
	startTime := time.Now()

	if err := series.Validate(); err != nil {
		o.recorder.RecordRun(OutcomeInvalid, "")
		return nil, fmt.Errorf("validate series: %w", err)
	}

	var (
		forecastResult contracts.ForecastResult
		riskMetrics    contracts.RiskMetrics
	)

	// Forecast / Risk 는 서로 독립 → 병렬 실행 후 합류
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		stageStart := time.Now()
		result, err := o.forecaster.Forecast(series, horizon)
		o.recorder.ObserveStage(contracts.StageForecast, time.Since(stageStart))
		if err != nil {
			return fmt.Errorf("%s stage: %w", contracts.StageForecast, err)
		}
		forecastResult = result
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		stageStart := time.Now()
		metrics, err := o.scorer.Score(series)
		o.recorder.ObserveStage(contracts.StageRisk, time.Since(stageStart))
		if err != nil {
			return fmt.Errorf("%s stage: %w", contracts.StageRisk, err)
		}
		riskMetrics = metrics
		return nil
	})

	if err := g.Wait(); err != nil {
		o.recordFailure(err)
		o.logger.WithError(err).Warn("Pipeline run failed")
		return nil, err
	}

	stageStart := time.Now()
	annotation := o.validator.Validate(forecastResult, riskMetrics)
	o.recorder.ObserveStage(contracts.StageConsistency, time.Since(stageStart))

	stageStart = time.Now()
	result := o.assemble(series, horizon, forecastResult, riskMetrics, annotation)
	o.recorder.ObserveStage(contracts.StageAssemble, time.Since(stageStart))

	o.recorder.RecordRun(OutcomeSuccess, riskMetrics.RiskLabel)
	if forecastResult.Degraded {
		o.recorder.RecordDegraded()
	}
	if annotation != nil {
		o.recorder.RecordAnnotation(annotation.Scenario)
	}

	o.logger.WithFields(map[string]interface{}{
		"points":          series.Len(),
		"horizon":         horizon,
		"method":          string(forecastResult.Method),
		"degraded":        forecastResult.Degraded,
		"composite_score": riskMetrics.CompositeScore,
		"risk_label":      riskMetrics.RiskLabel.String(),
		"scenario":        result.Scenario(),
		"duration_ms":     time.Since(startTime).Milliseconds(),
	}).Info("Pipeline run completed")

	return result, nil
}

// RunDefault 설정의 기본 예측 기간으로 실행
func (o *Orchestrator) RunDefault(ctx context.Context, series contracts.RevenueSeries) (*contracts.PipelineResult, error) {
	return o.Run(ctx, series, o.config.Horizon)
}

// RunWithNarrative Run + 서술형 인사이트 (Narrator 가 없으면 빈 문자열)
func (o *Orchestrator) RunWithNarrative(ctx context.Context, series contracts.RevenueSeries, horizon int) (*contracts.PipelineResult, string, error) {
	result, err := o.Run(ctx, series, horizon)
	if err != nil {
		return nil, "", err
	}
	if o.narrator == nil {
		return result, "", nil
	}
	return result, o.narrator.Build(result), nil
}

// assemble 단계 결과를 한 번에 조립 (이후 변경 없음)
func (o *Orchestrator) assemble(
	series contracts.RevenueSeries,
	horizon int,
	forecastResult contracts.ForecastResult,
	riskMetrics contracts.RiskMetrics,
	annotation *contracts.ConsistencyAnnotation,
) *contracts.PipelineResult {
	recentShort := series.RecentChange(shortLookback)
	recentLong := recentShort
	if series.Len() >= longLookback {
		recentLong = series.RecentChange(longLookback)
	}

	return &contracts.PipelineResult{
		Forecast:       forecastResult,
		Risk:           riskMetrics,
		Consistency:    annotation,
		StabilityIndex: 100 - riskMetrics.CompositeScore,
		LastActual:     series.Last().Value,
		Horizon:        horizon,
		RecentShortPct: recentShort,
		RecentLongPct:  recentLong,
	}
}

func (o *Orchestrator) recordFailure(err error) {
	if contracts.IsInputError(err) {
		o.recorder.RecordRun(OutcomeInvalid, "")
		return
	}
	o.recorder.RecordRun(OutcomeError, "")
}
