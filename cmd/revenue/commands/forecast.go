package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "매출 예측 + 리스크 + 인사이트",
	Long: `월별 매출 CSV 로 전체 파이프라인을 실행합니다.

이 명령어는:
- 1~3개월 매출 예측 (신뢰 구간 포함)
- 변동성/낙폭/모멘텀 기반 리스크 등급
- 예측/리스크 정합성 검증
- 요약 인사이트 출력

Example:
  go run ./cmd/revenue forecast --file sales.csv
  go run ./cmd/revenue forecast --file sales.csv --horizon 2 --json`,
	RunE: runForecast,
}

var (
	forecastFile    string
	forecastHorizon int
	forecastJSON    bool
)

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVarP(&forecastFile, "file", "f", "", "매출 CSV 파일 (date,revenue)")
	forecastCmd.Flags().IntVar(&forecastHorizon, "horizon", 0, "예측 기간 1~3개월 (기본: 파이프라인 설정)")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "JSON 응답 출력")
}

func runForecast(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	s, err := a.readSeriesFile(forecastFile)
	if err != nil {
		return err
	}

	horizon := forecastHorizon
	if horizon == 0 {
		horizon = a.pipelineCfg.Horizon
	}

	result, insight, err := a.orchestrator.RunWithNarrative(cmd.Context(), s, horizon)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if forecastJSON {
		return PrintJSON(out, contracts.NewForecastResponse(result, insight))
	}

	PrintHeader(out, "Revenue Forecast", newSeriesInfo(forecastFile, s), horizon)
	PrintForecastTable(out, result.Forecast)
	PrintRiskSummary(out, result)
	PrintInsight(out, insight)
	return nil
}
