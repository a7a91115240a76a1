package contracts

import "time"

// ForecastMethod 예측 방식
type ForecastMethod string

const (
	// MethodHoltLinear 가법 추세 지수평활 (Holt)
	MethodHoltLinear ForecastMethod = "holt-linear"
	// MethodLastValue 마지막 값 유지 (데이터 부족 시 폴백)
	MethodLastValue ForecastMethod = "last-value"
)

// ForecastPoint 단일 기간 예측
// 불변식: LowerBound <= PointEstimate <= UpperBound
type ForecastPoint struct {
	Period        time.Time `json:"period"`
	PointEstimate float64   `json:"point_estimate"`
	LowerBound    float64   `json:"lower_bound"`
	UpperBound    float64   `json:"upper_bound"`
}

// ForecastResult 예측 결과
type ForecastResult struct {
	Points      []ForecastPoint `json:"points"`
	Method      ForecastMethod  `json:"method"`
	Degraded    bool            `json:"degraded"`     // 폴백 모드 여부 (오류 아님)
	ResidualStd float64         `json:"residual_std"` // 1-step 잔차 표준편차
}

// Estimates 점 추정값 목록
func (f ForecastResult) Estimates() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.PointEstimate
	}
	return out
}

// Lower 하한 목록
func (f ForecastResult) Lower() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.LowerBound
	}
	return out
}

// Upper 상한 목록
func (f ForecastResult) Upper() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.UpperBound
	}
	return out
}

// Mean 점 추정 평균 (포인트가 없으면 0)
func (f ForecastResult) Mean() float64 {
	if len(f.Points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range f.Points {
		sum += p.PointEstimate
	}
	return sum / float64(len(f.Points))
}
