package consistency

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// Direction 예측 방향
type Direction int

const (
	DirectionDown Direction = -1
	DirectionFlat Direction = 0
	DirectionUp   Direction = 1
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "flat"
	}
}

// Validator 예측 방향과 리스크 등급의 정합성 검증기
// ⭐ SSOT: 규칙 순서대로 평가, 첫 번째 일치만 반환
type Validator struct {
	config Config
	log    zerolog.Logger
}

// NewValidator 기본 설정으로 검증기 생성
func NewValidator(log zerolog.Logger) *Validator {
	return NewValidatorWithConfig(DefaultConfig(), log)
}

// NewValidatorWithConfig 커스텀 설정으로 검증기 생성
func NewValidatorWithConfig(config Config, log zerolog.Logger) *Validator {
	return &Validator{
		config: config,
		log:    log.With().Str("component", "consistency.validator").Logger(),
	}
}

// Config 현재 설정
func (v *Validator) Config() Config {
	return v.config
}

// Validate 모순되는 조합이면 주석 반환, 아니면 nil
//  1. 상승 예측 + High   → growth-forecast-high-risk
//  2. 하락 예측 + Low    → decline-forecast-low-risk
//  3. 넓은 밴드 + Low    → wide-uncertainty-low-risk
func (v *Validator) Validate(forecast contracts.ForecastResult, risk contracts.RiskMetrics) *contracts.ConsistencyAnnotation {
	direction := v.Direction(forecast)
	width := MaxRelativeWidth(forecast)

	var annotation *contracts.ConsistencyAnnotation
	switch {
	case direction == DirectionUp && risk.RiskLabel == contracts.RiskHigh:
		annotation = &contracts.ConsistencyAnnotation{
			Scenario: contracts.ScenarioGrowthHighRisk,
			Explanation: fmt.Sprintf(
				"Forecast projects growth but composite risk is High (score %.1f, volatility %.1f%%, drawdown %.1f%%). "+
					"Recent gains sit on an unstable history; investigate the revenue drivers before relying on the upward path.",
				risk.CompositeScore, risk.VolatilityPercent, risk.DrawdownPercent),
		}
	case direction == DirectionDown && risk.RiskLabel == contracts.RiskLow:
		annotation = &contracts.ConsistencyAnnotation{
			Scenario: contracts.ScenarioDeclineLowRisk,
			Explanation: fmt.Sprintf(
				"Forecast projects a decline while composite risk is Low (score %.1f). "+
					"History has been stable, so this looks like a controlled slowdown; watch whether it persists.",
				risk.CompositeScore),
		}
	case width > v.config.InstabilityThreshold && risk.RiskLabel == contracts.RiskLow:
		annotation = &contracts.ConsistencyAnnotation{
			Scenario: contracts.ScenarioWideUncertainLow,
			Explanation: fmt.Sprintf(
				"Forecast interval spans %.0f%% of the estimate while composite risk is Low. "+
					"The projection is less certain than the risk label suggests.",
				width*100),
		}
	}

	if annotation != nil {
		v.log.Debug().
			Str("scenario", string(annotation.Scenario)).
			Str("direction", direction.String()).
			Str("risk_label", risk.RiskLabel.String()).
			Float64("max_relative_width", width).
			Msg("consistency annotation raised")
	}

	return annotation
}

// Direction 첫 예측값 → 마지막 예측값 방향 (상대 허용오차 이내면 보합)
// 포인트가 1개 이하이면 항상 보합
func (v *Validator) Direction(forecast contracts.ForecastResult) Direction {
	n := len(forecast.Points)
	if n < 2 {
		return DirectionFlat
	}
	first := forecast.Points[0].PointEstimate
	last := forecast.Points[n-1].PointEstimate
	delta := last - first
	if math.Abs(delta) <= v.config.FlatTolerance*math.Abs(first) {
		return DirectionFlat
	}
	if delta > 0 {
		return DirectionUp
	}
	return DirectionDown
}

// MaxRelativeWidth 예측 포인트 중 (상한 - 하한) / 점 추정 최댓값
// 점 추정이 0 이하인 포인트는 제외
func MaxRelativeWidth(forecast contracts.ForecastResult) float64 {
	var widest float64
	for _, p := range forecast.Points {
		if p.PointEstimate <= 0 {
			continue
		}
		if w := (p.UpperBound - p.LowerBound) / p.PointEstimate; w > widest {
			widest = w
		}
	}
	return widest
}
