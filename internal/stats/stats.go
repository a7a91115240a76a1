// Package stats 시계열 기술통계 (순수 계산)
// ⭐ SSOT: forecast/risk 가 공유하는 통계 함수는 여기서만 정의
package stats

import "math"

// Mean 산술 평균 (빈 입력이면 0)
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStd 모표준편차 (ddof=0, 2개 미만이면 0)
func PopulationStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Min 최솟값 (빈 입력이면 0)
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// Max 최댓값 (빈 입력이면 0)
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// LinearSlope 인덱스(0..n-1)에 대한 값의 OLS 기울기 (2개 미만이면 0)
func LinearSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	xMean := float64(n-1) / 2
	yMean := Mean(values)

	var sxy, sxx float64
	for i, y := range values {
		dx := float64(i) - xMean
		sxy += dx * (y - yMean)
		sxx += dx * dx
	}
	return sxy / sxx
}

// Diffs 인접 값 차분 (values[i] - values[i-1])
func Diffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// Clamp v 를 [lo, hi] 로 제한
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
