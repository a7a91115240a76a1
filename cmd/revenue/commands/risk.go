package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// riskCmd represents the risk command
var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "리스크 등급만 출력",
	Long: `월별 매출 CSV 의 리스크 등급(Low/Medium/High)을 출력합니다.

Example:
  go run ./cmd/revenue risk --file sales.csv
  go run ./cmd/revenue risk --file sales.csv --json`,
	RunE: runRisk,
}

var (
	riskFile string
	riskJSON bool
)

func init() {
	rootCmd.AddCommand(riskCmd)

	riskCmd.Flags().StringVarP(&riskFile, "file", "f", "", "매출 CSV 파일 (date,revenue)")
	riskCmd.Flags().BoolVar(&riskJSON, "json", false, "JSON 응답 출력 (risk, composite_score)")
}

func runRisk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	s, err := a.readSeriesFile(riskFile)
	if err != nil {
		return err
	}

	result, err := a.orchestrator.RunDefault(cmd.Context(), s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if riskJSON {
		return PrintJSON(out, contracts.RiskResponse{
			Risk:           result.Risk.RiskLabel,
			CompositeScore: result.Risk.CompositeScore,
		})
	}

	fmt.Fprintln(out, result.Risk.RiskLabel)
	return nil
}
