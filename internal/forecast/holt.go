package forecast

// holtFit 가법 추세 지수평활 적합 결과
type holtFit struct {
	Level  float64   // 마지막 평활 레벨
	Trend  float64   // 마지막 평활 추세
	Errors []float64 // 1-step 예측 오차 (t >= 2)
}

// fitHolt 가법 추세 지수평활 적합
// 초기값: L0 = y0, T0 = y1 - y0 (t=1 오차는 구조상 0 이므로 제외)
// len(values) >= 2 를 전제
func fitHolt(values []float64, alpha, beta float64) holtFit {
	level := values[0]
	trend := values[1] - values[0]
	errs := make([]float64, 0, len(values))

	for t := 1; t < len(values); t++ {
		pred := level + trend
		if t >= 2 {
			errs = append(errs, values[t]-pred)
		}

		newLevel := alpha*values[t] + (1-alpha)*pred
		trend = beta*(newLevel-level) + (1-beta)*trend
		level = newLevel
	}

	return holtFit{Level: level, Trend: trend, Errors: errs}
}

// project 원시 예측 L + k*T (k = 1..horizon)
func (h holtFit) project(horizon int) []float64 {
	out := make([]float64, horizon)
	for k := 0; k < horizon; k++ {
		out[k] = h.Level + float64(k+1)*h.Trend
	}
	return out
}
