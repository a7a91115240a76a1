package insight

import (
	"fmt"
	"strings"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// 최근 3개월 변화율 구간
const (
	significantDecline = -0.15
	moderateDecline    = -0.10
	strongGrowth       = 0.10
)

// Narrator 파이프라인 결과 → 경영진용 서술 (순수 함수, 결정적)
// 섹션: Revenue Trend / Risk Assessment / Recommendation (+ Consistency Note)
type Narrator struct{}

// NewNarrator 생성
func NewNarrator() *Narrator {
	return &Narrator{}
}

// Build 서술 생성 (nil 결과면 빈 문자열)
func (n *Narrator) Build(result *contracts.PipelineResult) string {
	if result == nil {
		return ""
	}

	forecastPct := forecastChangePct(result)

	parts := []string{
		trendSection(result, forecastPct),
		riskSection(result.Risk),
		recommendationSection(result, forecastPct),
	}
	if result.Consistency != nil {
		parts = append(parts, "Consistency Note: "+result.Consistency.Explanation)
	}

	return strings.Join(parts, "\n\n")
}

// forecastChangePct 예측 평균의 마지막 실적 대비 변화율 (%)
func forecastChangePct(result *contracts.PipelineResult) float64 {
	if result.LastActual == 0 || len(result.Forecast.Points) == 0 {
		return 0
	}
	return (result.Forecast.Mean() - result.LastActual) / result.LastActual * 100
}

func trendSection(result *contracts.PipelineResult, forecastPct float64) string {
	if len(result.Forecast.Points) == 0 {
		return "Revenue Trend: Insufficient data for detailed analysis."
	}

	var b strings.Builder
	b.WriteString("Revenue Trend: ")
	switch {
	case result.RecentShortPct < significantDecline:
		fmt.Fprintf(&b, "downward trend expected with %.1f%% change next month.", forecastPct)
	case result.RecentShortPct > strongGrowth:
		fmt.Fprintf(&b, "upward trajectory with %+.1f%% projected next month.", forecastPct)
	default:
		fmt.Fprintf(&b, "modest movement of %+.1f%% anticipated next month.", forecastPct)
	}
	if result.Forecast.Degraded {
		b.WriteString(" Limited history: the forecast carries the last observed value forward.")
	}
	return b.String()
}

func riskSection(m contracts.RiskMetrics) string {
	return fmt.Sprintf(
		"Risk Assessment: Business classified as %s Risk (Composite Score: %.1f/100). "+
			"Volatility: %.1f%%, Drawdown from Peak: %.1f%%.",
		m.RiskLabel, m.CompositeScore, m.VolatilityPercent, m.DrawdownPercent)
}

func recommendationSection(result *contracts.PipelineResult, forecastPct float64) string {
	recent := result.RecentShortPct

	var rec string
	switch result.Risk.RiskLabel {
	case contracts.RiskHigh:
		rec = "Critical Action Required: Revenue history shows elevated instability. " +
			"Preserve cash, prioritize high-ROI retention initiatives, execute targeted cost reductions " +
			"and run a root-cause analysis of revenue swings. Stress-test the 6-month cash runway."
	case contracts.RiskMedium:
		switch {
		case recent < moderateDecline:
			rec = fmt.Sprintf("Revenue is projected to decline next month (%.1f%%). "+
				"Risk remains moderate, but continued downward momentum could raise exposure. "+
				"Monitor retention metrics and unit economics closely and prepare corrective plans.", forecastPct)
		case recent > strongGrowth:
			rec = "Growth is present but constrained by elevated volatility. " +
				"Strengthen financial buffers, track performance more frequently " +
				"and diversify customer acquisition channels."
		default:
			rec = "Moderate risk with mixed signals. " +
				"Tighten cohort tracking, increase the cadence of operational reviews " +
				"and keep budget allocations flexible."
		}
	default:
		if recent < moderateDecline {
			rec = fmt.Sprintf("Controlled Decline: Revenue is projected to change %.1f%% next month "+
				"with predictable patterns. Prioritize retention improvements, run cohort analysis "+
				"and review pricing and product-market fit to arrest the decline.", forecastPct)
		} else {
			rec = "Operational stability supports strategic initiatives. " +
				"Invest prudently in growth and expand the addressable market " +
				"while maintaining disciplined margin management."
		}
	}

	return "Recommendation:\n- " + rec
}
