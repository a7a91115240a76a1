package risk

import (
	"math"

	"github.com/wonny/revenue-risk/internal/stats"
)

// =============================================================================
// Risk Statistics (Pure)
// =============================================================================

// VolatilityPercent 변동계수 (모표준편차 / 평균 * 100)
// 평균이 0 이거나 포인트가 1개면 0
func VolatilityPercent(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := stats.Mean(values)
	if mean == 0 {
		return 0
	}
	return stats.PopulationStd(values) / mean * 100
}

// DrawdownPercent 과거 최고점 대비 현재값 하락률 (음수 불가)
func DrawdownPercent(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	peak := stats.Max(values)
	if peak <= 0 {
		return 0
	}
	current := values[len(values)-1]
	return math.Max(0, (peak-current)/peak*100)
}

// MomentumPercent 월 인덱스에 대한 OLS 기울기를 평균 대비 % 로 표현
// 포인트가 1개거나 평균이 0 이면 0
func MomentumPercent(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := stats.Mean(values)
	if mean == 0 {
		return 0
	}
	return stats.LinearSlope(values) / mean * 100
}

// TrendRisk 모멘텀의 추세 위험 기여분
// 하락 모멘텀만 위험으로 계산, 상승 모멘텀은 0
func TrendRisk(momentumPercent, scale float64) float64 {
	return math.Max(0, -momentumPercent) * scale
}
