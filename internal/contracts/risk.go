package contracts

// RiskLabel 리스크 등급
type RiskLabel string

const (
	RiskLow    RiskLabel = "Low"
	RiskMedium RiskLabel = "Medium"
	RiskHigh   RiskLabel = "High"
)

// String returns the label text
func (l RiskLabel) String() string {
	return string(l)
}

// RiskMetrics 리스크 지표
// CompositeScore ∈ [0,100], RiskLabel 은 CompositeScore 의 순수 함수
type RiskMetrics struct {
	VolatilityPercent       float64   `json:"volatility_percent"`
	DrawdownPercent         float64   `json:"drawdown_percent"`
	MomentumPercentPerMonth float64   `json:"momentum_pct_per_month"`
	CompositeScore          float64   `json:"composite_score"`
	RiskLabel               RiskLabel `json:"risk_label"`
}
