package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/insight"
	"github.com/wonny/revenue-risk/internal/pipelineconfig"
	"github.com/wonny/revenue-risk/pkg/logger"
)

var jan2023 = time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)

func linearSeries(n int) contracts.RevenueSeries {
	values := make([]float64, n)
	for i := range values {
		values[i] = 1000 + 50*float64(i)
	}
	return contracts.SeriesFromValues(jan2023, values)
}

// 폭락 후 최근 회복 구간만 상승하는 이력
func crashThenRecovery() contracts.RevenueSeries {
	return contracts.SeriesFromValues(jan2023, []float64{8000, 2000, 7000, 1500, 6000, 1000, 1200, 1500, 1900, 2400})
}

func newOrchestrator(opts ...Option) *Orchestrator {
	return New(pipelineconfig.Default(), logger.Nop(), opts...)
}

func TestRun_IncreasingSeries(t *testing.T) {
	result, err := newOrchestrator().Run(context.Background(), linearSeries(12), 3)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Len(t, result.Forecast.Points, 3)
	assert.Equal(t, contracts.RiskLow, result.Risk.RiskLabel)
	assert.Nil(t, result.Consistency)
	assert.InDelta(t, 100-result.Risk.CompositeScore, result.StabilityIndex, 1e-12)
	assert.Equal(t, 1550.0, result.LastActual)
	assert.Equal(t, 3, result.Horizon)

	// 1550 vs 1450 (3개월), 1550 vs 1300 (6개월)
	assert.InDelta(t, 100.0/1450, result.RecentShortPct, 1e-12)
	assert.InDelta(t, 250.0/1300, result.RecentLongPct, 1e-12)
}

func TestRun_GrowthForecastWithHighRisk(t *testing.T) {
	result, err := newOrchestrator().Run(context.Background(), crashThenRecovery(), 3)
	require.NoError(t, err)

	estimates := result.Forecast.Estimates()
	assert.Greater(t, estimates[2], estimates[0])
	assert.Equal(t, contracts.RiskHigh, result.Risk.RiskLabel)

	require.NotNil(t, result.Consistency)
	assert.Equal(t, contracts.ScenarioGrowthHighRisk, result.Consistency.Scenario)
	assert.Equal(t, string(contracts.ScenarioGrowthHighRisk), result.Scenario())
}

func TestRun_ShortSeriesUsesShortChangeForLong(t *testing.T) {
	result, err := newOrchestrator().Run(context.Background(), linearSeries(4), 2)
	require.NoError(t, err)

	assert.Equal(t, result.RecentShortPct, result.RecentLongPct)
}

func TestRun_DegradedForecastIsNotAnError(t *testing.T) {
	series := contracts.SeriesFromValues(jan2023, []float64{1000, 1100})

	result, err := newOrchestrator().Run(context.Background(), series, 3)
	require.NoError(t, err)
	assert.True(t, result.Forecast.Degraded)
	assert.Equal(t, []float64{1100, 1100, 1100}, result.Forecast.Estimates())
}

func TestRun_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		series  contracts.RevenueSeries
		horizon int
		want    error
	}{
		{"empty series", contracts.RevenueSeries{}, 3, contracts.ErrEmptySeries},
		{"non-positive value", contracts.SeriesFromValues(jan2023, []float64{1000, 0, 900}), 3, contracts.ErrInvalidSeries},
		{"horizon too large", linearSeries(6), 4, contracts.ErrInvalidHorizon},
		{"horizon zero", linearSeries(6), 0, contracts.ErrInvalidHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newOrchestrator().Run(context.Background(), tt.series, tt.horizon)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, contracts.IsInputError(err))
		})
	}
}

type failingScorer struct{ err error }

func (f failingScorer) Score(contracts.RevenueSeries) (contracts.RiskMetrics, error) {
	return contracts.RiskMetrics{}, f.err
}

func TestRun_StageErrorIsWrappedWithStageName(t *testing.T) {
	base := newOrchestrator()
	boom := errors.New("boom")
	o := NewOrchestrator(base.forecaster, failingScorer{err: boom}, base.validator, base.config, logger.Nop())

	result, err := o.Run(context.Background(), linearSeries(6), 3)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "risk stage")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newOrchestrator().Run(ctx, linearSeries(6), 3)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Idempotent(t *testing.T) {
	o := newOrchestrator()
	series := crashThenRecovery()

	first, err := o.Run(context.Background(), series, 3)
	require.NoError(t, err)
	second, err := o.Run(context.Background(), series, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestRun_ConcurrentMatchesSequential(t *testing.T) {
	o := newOrchestrator()
	series := crashThenRecovery()

	want, err := o.Run(context.Background(), series, 3)
	require.NoError(t, err)

	const workers = 8
	results := make([]*contracts.PipelineResult, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = o.Run(context.Background(), series, 3)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRun_DoesNotMutateSeries(t *testing.T) {
	series := crashThenRecovery()
	before := series.Values()

	_, err := newOrchestrator().Run(context.Background(), series, 3)
	require.NoError(t, err)

	assert.Equal(t, before, series.Values())
}

type countingRecorder struct {
	mu          sync.Mutex
	stages      map[contracts.Stage]int
	runs        map[string]int
	degraded    int
	annotations []contracts.Scenario
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{stages: map[contracts.Stage]int{}, runs: map[string]int{}}
}

func (r *countingRecorder) ObserveStage(stage contracts.Stage, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[stage]++
}

func (r *countingRecorder) RecordRun(outcome string, _ contracts.RiskLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[outcome]++
}

func (r *countingRecorder) RecordDegraded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.degraded++
}

func (r *countingRecorder) RecordAnnotation(s contracts.Scenario) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.annotations = append(r.annotations, s)
}

func TestRun_RecordsMetrics(t *testing.T) {
	rec := newCountingRecorder()
	o := newOrchestrator(WithRecorder(rec))

	_, err := o.Run(context.Background(), crashThenRecovery(), 3)
	require.NoError(t, err)
	_, err = o.Run(context.Background(), contracts.RevenueSeries{}, 3)
	require.Error(t, err)

	assert.Equal(t, 1, rec.runs[OutcomeSuccess])
	assert.Equal(t, 1, rec.runs[OutcomeInvalid])
	assert.Equal(t, 1, rec.stages[contracts.StageForecast])
	assert.Equal(t, 1, rec.stages[contracts.StageAssemble])
	assert.Equal(t, []contracts.Scenario{contracts.ScenarioGrowthHighRisk}, rec.annotations)
}

func TestRunWithNarrative(t *testing.T) {
	o := newOrchestrator(WithNarrator(insight.NewNarrator()))

	result, narrative, err := o.RunWithNarrative(context.Background(), crashThenRecovery(), 3)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, narrative, "Risk Assessment: Business classified as High Risk")
	assert.Contains(t, narrative, "Consistency Note:")

	_, narrative, err = newOrchestrator().RunWithNarrative(context.Background(), linearSeries(6), 3)
	require.NoError(t, err)
	assert.Empty(t, narrative)
}

func TestRunDefault_UsesConfiguredHorizon(t *testing.T) {
	o := New(pipelineconfig.Default().WithHorizon(2), logger.Nop())

	result, err := o.RunDefault(context.Background(), linearSeries(6))
	require.NoError(t, err)
	assert.Len(t, result.Forecast.Points, 2)
}
