package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/insight"
	"github.com/wonny/revenue-risk/internal/pipeline"
	"github.com/wonny/revenue-risk/internal/pipelineconfig"
	"github.com/wonny/revenue-risk/internal/series"
	"github.com/wonny/revenue-risk/pkg/config"
	"github.com/wonny/revenue-risk/pkg/logger"
	"github.com/wonny/revenue-risk/pkg/metrics"
)

// app 커맨드 공통 의존성
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	pipelineCfg  pipelineconfig.Config
	metrics      *metrics.Recorder // METRICS_ENABLED=false 이면 nil
	orchestrator *pipeline.Orchestrator
	preparer     *series.Preparer
}

// newApp 환경설정 → 로거 → 파이프라인 설정 → 오케스트레이터
// 로그는 stderr 로 (stdout 은 결과 출력 전용)
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if pipelineConfigPath != "" {
		cfg.Pipeline.ConfigPath = pipelineConfigPath
	}

	log := logger.NewWithWriter(cfg, cmd.ErrOrStderr())

	pipelineCfg, err := pipelineconfig.LoadOrDefault(cfg.Pipeline.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load pipeline config: %w", err)
	}
	if cfg.Pipeline.Horizon != 0 {
		pipelineCfg = pipelineCfg.WithHorizon(cfg.Pipeline.Horizon)
		if err := pipelineCfg.Validate(); err != nil {
			return nil, fmt.Errorf("FORECAST_HORIZON: %w", err)
		}
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		pipelineCfg: pipelineCfg,
		preparer:    series.NewPreparer(log.Zerolog()),
	}

	opts := []pipeline.Option{pipeline.WithNarrator(insight.NewNarrator())}
	if cfg.MetricsEnabled {
		a.metrics = metrics.New()
		opts = append(opts, pipeline.WithRecorder(a.metrics))
	}
	a.orchestrator = pipeline.New(pipelineCfg, log, opts...)

	return a, nil
}

// readSeriesFile CSV 파일을 월별 시계열로 변환
func (a *app) readSeriesFile(path string) (contracts.RevenueSeries, error) {
	if path == "" {
		return contracts.RevenueSeries{}, fmt.Errorf("--file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return contracts.RevenueSeries{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := a.preparer.Read(f)
	if err != nil {
		return contracts.RevenueSeries{}, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}
