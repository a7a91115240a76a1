package risk

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/revenue-risk/internal/contracts"
)

var jan2024 = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

func score(t *testing.T, values []float64) contracts.RiskMetrics {
	t.Helper()
	metrics, err := NewScorer(zerolog.Nop()).Score(contracts.SeriesFromValues(jan2024, values))
	require.NoError(t, err)
	return metrics
}

func TestDefaultConfig_MatchesDefaultTags(t *testing.T) {
	var tagged Config
	require.NoError(t, defaults.Set(&tagged))
	assert.Equal(t, DefaultConfig(), tagged)
	assert.NoError(t, ValidateConfig(tagged))
}

func TestScore_ConstantSeries(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 1000
	}

	m := score(t, values)

	assert.Equal(t, 0.0, m.VolatilityPercent)
	assert.Equal(t, 0.0, m.DrawdownPercent)
	assert.InDelta(t, 0.0, m.MomentumPercentPerMonth, 1e-12)
	assert.InDelta(t, 0.0, m.CompositeScore, 1e-9)
	assert.Equal(t, contracts.RiskLow, m.RiskLabel)
}

func TestScore_IncreasingSeries(t *testing.T) {
	values := make([]float64, 12)
	for i := range values {
		values[i] = 1000 + 50*float64(i)
	}

	m := score(t, values)

	assert.Greater(t, m.MomentumPercentPerMonth, 0.0)
	assert.Equal(t, 0.0, m.DrawdownPercent)
	// 상승 모멘텀은 위험에 기여하지 않음 → 변동성 항목만 남음
	assert.InDelta(t, 0.4*m.VolatilityPercent, m.CompositeScore, 1e-9)
	assert.Equal(t, contracts.RiskLow, m.RiskLabel)
}

func TestScore_CrashWithLateRecoveryIsHighRisk(t *testing.T) {
	m := score(t, []float64{8000, 2000, 7000, 1500, 6000, 1000, 1200, 1500, 1900, 2400})

	assert.InDelta(t, 70.0, m.DrawdownPercent, 1e-9)
	assert.Less(t, m.MomentumPercentPerMonth, 0.0)
	assert.GreaterOrEqual(t, m.CompositeScore, 60.0)
	assert.Equal(t, contracts.RiskHigh, m.RiskLabel)
}

func TestScore_TermsAreCappedAtTheirWeight(t *testing.T) {
	// 변동성 > 100%, 낙폭 ~ 99% → 각 항목은 100 으로 제한
	m := score(t, []float64{100000, 100, 90000, 100, 80000, 100, 500})

	assert.Greater(t, m.VolatilityPercent, 100.0)
	assert.LessOrEqual(t, m.CompositeScore, 100.0)

	b := NewScorer(zerolog.Nop()).Breakdown(m)
	assert.Equal(t, 100.0, b.VolatilityTerm)
	assert.LessOrEqual(t, b.DrawdownTerm, 100.0)
}

func TestScore_SinglePoint(t *testing.T) {
	m := score(t, []float64{5000})

	assert.Equal(t, contracts.RiskMetrics{
		CompositeScore: 0,
		RiskLabel:      contracts.RiskLow,
	}, m)
}

func TestScore_EmptySeries(t *testing.T) {
	_, err := NewScorer(zerolog.Nop()).Score(contracts.RevenueSeries{})
	assert.ErrorIs(t, err, contracts.ErrEmptySeries)
}

func TestClassify_Boundaries(t *testing.T) {
	thresholds := DefaultConfig().Thresholds

	tests := []struct {
		score float64
		want  contracts.RiskLabel
	}{
		{0, contracts.RiskLow},
		{29.999, contracts.RiskLow},
		{30.0, contracts.RiskMedium},
		{59.999, contracts.RiskMedium},
		{60.0, contracts.RiskHigh},
		{100, contracts.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score, thresholds), "score=%v", tt.score)
	}
}

func TestTrendRisk(t *testing.T) {
	assert.Equal(t, 0.0, TrendRisk(2.5, 10))
	assert.InDelta(t, 15.0, TrendRisk(-1.5, 10), 1e-12)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"weights do not sum to one", func(c *Config) { c.Weights.Volatility = 0.5 }, true},
		{"negative weight", func(c *Config) { c.Weights.Trend = -0.1; c.Weights.Drawdown = 0.7 }, true},
		{"inverted thresholds", func(c *Config) { c.Thresholds.Medium = 70 }, true},
		{"threshold above 100", func(c *Config) { c.Thresholds.High = 120 }, true},
		{"zero trend scale", func(c *Config) { c.TrendScale = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := ValidateConfig(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, contracts.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
