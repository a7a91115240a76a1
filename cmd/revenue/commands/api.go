package commands

import (
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/wonny/revenue-risk/internal/api"
	"github.com/wonny/revenue-risk/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health               - Health check
  GET  /metrics              - Prometheus 지표 (METRICS_ENABLED=true)
  POST /api/forecast         - 전체 파이프라인 (?horizon=1..3)
  POST /api/risk             - 리스크 등급만
  GET  /api/config           - 활성 파이프라인 설정 + 해시

Example:
  go run ./cmd/revenue api
  go run ./cmd/revenue api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	hash, err := a.pipelineCfg.Hash()
	if err != nil {
		return err
	}
	a.log.WithFields(map[string]interface{}{
		"port":        a.cfg.Port,
		"horizon":     a.pipelineCfg.Horizon,
		"config_hash": hash,
		"metrics":     a.metrics != nil,
	}).Info("Pipeline configured")

	handler := handlers.NewPipelineHandler(a.orchestrator, a.preparer, a.cfg.API.MaxUploadBytes, a.log)
	router := api.NewRouter(api.RouterDeps{
		Pipeline: handler,
		Metrics:  a.metrics,
		Limiter:  rate.NewLimiter(rate.Limit(a.cfg.API.RateLimit), a.cfg.API.RateBurst),
		Logger:   a.log,
	})

	server := api.New(a.cfg, a.log, router)
	if err := server.Run(cmd.Context()); err != nil {
		return err
	}

	a.log.Info("API server stopped")
	return nil
}
