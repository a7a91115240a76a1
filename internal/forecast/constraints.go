package forecast

import (
	"math"

	"github.com/wonny/revenue-risk/internal/stats"
)

// recentChange 최근 월간 변화 요약
type recentChange struct {
	Mean    float64 // 평균 변화 (부호 포함)
	MeanAbs float64 // 평균 절대 변화
}

// measureRecentChange 마지막 window 개 월간 변화의 평균
func measureRecentChange(values []float64, window int) recentChange {
	diffs := stats.Diffs(values)
	if len(diffs) > window {
		diffs = diffs[len(diffs)-window:]
	}

	abs := make([]float64, len(diffs))
	for i, d := range diffs {
		abs[i] = math.Abs(d)
	}

	return recentChange{Mean: stats.Mean(diffs), MeanAbs: stats.Mean(abs)}
}

// safetyLimits 안전 제약 파라미터
type safetyLimits struct {
	RestrictRebound bool    // 하락/보합 추세 여부
	MaxStepUp       float64 // 스텝당 최대 상승폭
	Floor           float64 // 하한 (과거 최저값 * FloorFactor)
}

// newSafetyLimits 적합 결과와 과거 값으로 제약 계산
func (f *Forecaster) newSafetyLimits(values []float64, trend float64) safetyLimits {
	recent := measureRecentChange(values, f.config.RecentWindow)
	return safetyLimits{
		RestrictRebound: trend <= 0 || recent.Mean <= 0,
		MaxStepUp:       f.config.MaxReboundMultiplier * recent.MeanAbs,
		Floor:           stats.Min(values) * f.config.FloorFactor,
	}
}

// apply 원시 예측에 누적 제약 적용
// k 번째 스텝의 기준은 k-1 번째 제약 후 값 (첫 스텝은 마지막 관측값)
// 반환: 제약 후 예측, 제약이 적용된 스텝 수
func (l safetyLimits) apply(raw []float64, lastObserved float64) ([]float64, int) {
	out := make([]float64, len(raw))
	prev := lastObserved
	clamped := 0

	for k, p := range raw {
		adj := p
		if l.RestrictRebound && adj > prev+l.MaxStepUp {
			adj = prev + l.MaxStepUp
		}
		if adj < l.Floor {
			adj = l.Floor
		}
		if adj != p {
			clamped++
		}
		out[k] = adj
		prev = adj
	}

	return out, clamped
}
