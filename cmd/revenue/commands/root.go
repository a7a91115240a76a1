package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	pipelineConfigPath string
	verbose            bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "revenue",
	Short: "월별 매출 추세 예측 + 비즈니스 리스크 분석",
	Long: `Revenue Forecast & Risk CLI

월별 매출 CSV(date,revenue)로 향후 1~3개월 매출을 예측하고
변동성/낙폭/모멘텀 기반 복합 리스크 등급을 계산합니다.

Usage:
  go run ./cmd/revenue [command]

Examples:
  go run ./cmd/revenue forecast --file sales.csv
  go run ./cmd/revenue forecast --file sales.csv --horizon 2 --json
  go run ./cmd/revenue risk --file sales.csv
  go run ./cmd/revenue api
  go run ./cmd/revenue schedule start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// SIGINT/SIGTERM 은 cmd.Context() 취소로 전달
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&pipelineConfigPath, "pipeline-config", "", "pipeline config YAML (default: PIPELINE_CONFIG or built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logs)")
}
