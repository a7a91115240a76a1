package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/stats"
)

// Forecaster 추세 예측기 (순수 계산)
// ⭐ SSOT: 상태 없음. 동일 입력 → 동일 출력
type Forecaster struct {
	config Config
	log    zerolog.Logger
}

// NewForecaster 기본 설정으로 예측기 생성
func NewForecaster(log zerolog.Logger) *Forecaster {
	return NewForecasterWithConfig(DefaultConfig(), log)
}

// NewForecasterWithConfig 커스텀 설정으로 예측기 생성
func NewForecasterWithConfig(config Config, log zerolog.Logger) *Forecaster {
	return &Forecaster{
		config: config,
		log:    log.With().Str("component", "forecast.forecaster").Logger(),
	}
}

// Config 현재 설정
func (f *Forecaster) Config() Config {
	return f.config
}

// Forecast 다음 horizon 개월 매출 예측
// - 포인트가 MinPointsForModel 미만이면 마지막 값 유지 폴백 (오류 아님, Degraded=true)
// - 그 외에는 Holt 가법 추세 평활 + 안전 제약 + 잔차 기반 신뢰구간
func (f *Forecaster) Forecast(series contracts.RevenueSeries, horizon int) (contracts.ForecastResult, error) {
	if series.Len() == 0 {
		return contracts.ForecastResult{}, contracts.ErrEmptySeries
	}
	if horizon < 1 || horizon > f.config.MaxHorizon {
		return contracts.ForecastResult{}, fmt.Errorf("%w: %d (allowed 1..%d)",
			contracts.ErrInvalidHorizon, horizon, f.config.MaxHorizon)
	}

	values := series.Values()
	lastPeriod := series.Last().Period

	if len(values) < f.config.MinPointsForModel {
		return f.lastValueForecast(values, lastPeriod, horizon), nil
	}
	return f.trendForecast(values, lastPeriod, horizon), nil
}

// lastValueForecast 폴백: 마지막 관측값을 그대로 유지, 고정 비율 밴드
func (f *Forecaster) lastValueForecast(values []float64, lastPeriod time.Time, horizon int) contracts.ForecastResult {
	last := values[len(values)-1]
	spread := math.Abs(last) * f.config.FallbackSpread

	points := make([]contracts.ForecastPoint, horizon)
	for k := range points {
		points[k] = contracts.ForecastPoint{
			Period:        contracts.MonthEnd(lastPeriod, k+1),
			PointEstimate: last,
			LowerBound:    last - spread,
			UpperBound:    last + spread,
		}
	}

	f.log.Debug().
		Int("points", len(values)).
		Int("min_points", f.config.MinPointsForModel).
		Float64("last_value", last).
		Msg("insufficient history, carrying last value forward")

	return contracts.ForecastResult{
		Points:   points,
		Method:   contracts.MethodLastValue,
		Degraded: true,
	}
}

// trendForecast Holt 적합 → 원시 예측 → 안전 제약 → 신뢰구간
func (f *Forecaster) trendForecast(values []float64, lastPeriod time.Time, horizon int) contracts.ForecastResult {
	fit := fitHolt(values, f.config.Alpha, f.config.Beta)
	raw := fit.project(horizon)

	limits := f.newSafetyLimits(values, fit.Trend)
	estimates, clamped := limits.apply(raw, values[len(values)-1])

	residualStd := stats.PopulationStd(fit.Errors)
	band := f.config.ZScore * residualStd

	points := make([]contracts.ForecastPoint, horizon)
	for k, p := range estimates {
		lower := p - band
		if lower < limits.Floor {
			lower = math.Min(limits.Floor, p)
		}
		points[k] = contracts.ForecastPoint{
			Period:        contracts.MonthEnd(lastPeriod, k+1),
			PointEstimate: p,
			LowerBound:    math.Min(lower, p),
			UpperBound:    math.Max(p+band, p),
		}
	}

	f.log.Debug().
		Float64("level", fit.Level).
		Float64("trend", fit.Trend).
		Float64("residual_std", residualStd).
		Bool("rebound_restricted", limits.RestrictRebound).
		Int("clamped_steps", clamped).
		Msg("trend forecast generated")

	return contracts.ForecastResult{
		Points:      points,
		Method:      contracts.MethodHoltLinear,
		ResidualStd: residualStd,
	}
}
