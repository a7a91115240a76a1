package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	singleLine = "───────────────────────────────────────────────────────────"
	doubleLine = "═══════════════════════════════════════════════════════════"
)

// SeriesInfo 입력 시계열 요약
type SeriesInfo struct {
	Source string
	Months int
	First  string
	Last   string
}

// newSeriesInfo 시계열에서 요약 생성
func newSeriesInfo(source string, s contracts.RevenueSeries) SeriesInfo {
	info := SeriesInfo{Source: source, Months: s.Len()}
	if s.Len() > 0 {
		info.First = s.Points[0].Period.Format("2006-01")
		info.Last = s.Last().Period.Format("2006-01")
	}
	return info
}

// PrintHeader prints a formatted command header
func PrintHeader(w io.Writer, title string, info SeriesInfo, horizon int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleLine)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, singleLine)
	fmt.Fprintf(w, "  Input     : %s\n", info.Source)
	fmt.Fprintf(w, "  Months    : %d (%s ~ %s)\n", info.Months, info.First, info.Last)
	if horizon > 0 {
		fmt.Fprintf(w, "  Horizon   : %d\n", horizon)
	}
	fmt.Fprintln(w, singleLine)
}

// PrintForecastTable prints forecast points with bands
func PrintForecastTable(w io.Writer, forecast contracts.ForecastResult) {
	fmt.Fprintf(w, "  %-9s %14s %14s %14s\n", "Period", "Forecast", "Lower", "Upper")
	for _, p := range forecast.Points {
		fmt.Fprintf(w, "  %-9s %14.2f %14.2f %14.2f\n",
			p.Period.Format("2006-01"), p.PointEstimate, p.LowerBound, p.UpperBound)
	}
	if forecast.Degraded {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "⚠️  Limited history: %s fallback (±band)\n", forecast.Method)
	}
	fmt.Fprintln(w, singleLine)
}

// PrintRiskSummary prints KPI block
func PrintRiskSummary(w io.Writer, result *contracts.PipelineResult) {
	r := result.Risk
	fmt.Fprintf(w, "  Risk      : %s (composite %.1f/100)\n", r.RiskLabel, r.CompositeScore)
	fmt.Fprintf(w, "  Stability : %.1f\n", result.StabilityIndex)
	fmt.Fprintf(w, "  Volatility: %.1f%%\n", r.VolatilityPercent)
	fmt.Fprintf(w, "  Drawdown  : %.1f%%\n", r.DrawdownPercent)
	fmt.Fprintf(w, "  Momentum  : %+.2f%%/month\n", r.MomentumPercentPerMonth)
	fmt.Fprintf(w, "  Recent    : %+.1f%% (3M) / %+.1f%% (6M)\n", result.RecentShortPct*100, result.RecentLongPct*100)

	if result.Consistency != nil {
		fmt.Fprintln(w, singleLine)
		fmt.Fprintf(w, "  Scenario  : %s\n", result.Consistency.Scenario)
		fmt.Fprintf(w, "  %s\n", result.Consistency.Explanation)
	}
	fmt.Fprintln(w, singleLine)
}

// PrintInsight prints the narrative block
func PrintInsight(w io.Writer, insight string) {
	if insight == "" {
		return
	}
	fmt.Fprintln(w, insight)
	fmt.Fprintln(w, doubleLine)
}

// PrintJSON prints v as indented JSON
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}
