package contracts

// ForecastResponse 프레젠테이션 레이어 응답 페이로드
// ⭐ SSOT: API/CLI JSON 출력 필드명은 여기서만 정의
type ForecastResponse struct {
	Predictions            []float64 `json:"predictions"`
	Lower                  []float64 `json:"lower"`
	Upper                  []float64 `json:"upper"`
	VolatilityPercent      float64   `json:"volatility_percent"`
	DrawdownPercent        float64   `json:"drawdown_percent"`
	MomentumPctPerMonth    float64   `json:"momentum_pct_per_month"`
	CompositeScore         float64   `json:"composite_score"`
	Risk                   RiskLabel `json:"risk"`
	StabilityIndex         float64   `json:"stability_index"`
	Scenario               *string   `json:"scenario"`
	ConsistencyExplanation string    `json:"consistency_explanation,omitempty"`
	RecentShortPct         float64   `json:"recent_short_pct"`
	RecentLongPct          float64   `json:"recent_long_pct"`
	Degraded               bool      `json:"degraded"`
	Insight                string    `json:"insight,omitempty"`
}

// RiskResponse /api/risk 응답
type RiskResponse struct {
	Risk           RiskLabel `json:"risk"`
	CompositeScore float64   `json:"composite_score"`
}

// NewForecastResponse PipelineResult 를 응답 페이로드로 변환
func NewForecastResponse(result *PipelineResult, insight string) ForecastResponse {
	resp := ForecastResponse{
		Predictions:         result.Forecast.Estimates(),
		Lower:               result.Forecast.Lower(),
		Upper:               result.Forecast.Upper(),
		VolatilityPercent:   result.Risk.VolatilityPercent,
		DrawdownPercent:     result.Risk.DrawdownPercent,
		MomentumPctPerMonth: result.Risk.MomentumPercentPerMonth,
		CompositeScore:      result.Risk.CompositeScore,
		Risk:                result.Risk.RiskLabel,
		StabilityIndex:      result.StabilityIndex,
		RecentShortPct:      result.RecentShortPct,
		RecentLongPct:       result.RecentLongPct,
		Degraded:            result.Forecast.Degraded,
		Insight:             insight,
	}

	if result.Consistency != nil {
		scenario := string(result.Consistency.Scenario)
		resp.Scenario = &scenario
		resp.ConsistencyExplanation = result.Consistency.Explanation
	}

	return resp
}
