package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/revenue-risk/internal/scheduler"
	"github.com/wonny/revenue-risk/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "정기 리포트 스케줄러",
	Long: `REPORT_INPUT 의 매출 CSV 로 파이프라인을 주기적으로 실행하고
REPORT_OUTPUT_DIR 에 report-<run id>.json 을 작성합니다.

Commands:
  start - REPORT_SCHEDULE (cron) 에 따라 데몬 실행
  run   - 리포트 1회 즉시 생성`,
}

var scheduleStartCmd = &cobra.Command{
	Use:   "start",
	Short: "스케줄러 데몬 시작",
	Long: `Example:
  REPORT_SCHEDULE="0 6 1 * *" REPORT_INPUT=sales.csv go run ./cmd/revenue schedule start`,
	RunE: runScheduleStart,
}

var scheduleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "리포트 즉시 생성",
	Long: `Example:
  go run ./cmd/revenue schedule run --input sales.csv --output-dir reports`,
	RunE: runScheduleRun,
}

var (
	reportInput     string
	reportOutputDir string
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	scheduleCmd.AddCommand(scheduleRunCmd)

	scheduleCmd.PersistentFlags().StringVar(&reportInput, "input", "", "매출 CSV 경로 (기본: REPORT_INPUT)")
	scheduleCmd.PersistentFlags().StringVar(&reportOutputDir, "output-dir", "", "리포트 디렉토리 (기본: REPORT_OUTPUT_DIR)")
}

// newReportJob 플래그 > 환경변수 순으로 리포트 잡 구성
func newReportJob(a *app) (*jobs.ReportJob, error) {
	if reportInput != "" {
		a.cfg.Report.InputPath = reportInput
	}
	if reportOutputDir != "" {
		a.cfg.Report.OutputDir = reportOutputDir
	}
	if a.cfg.Report.InputPath == "" {
		return nil, fmt.Errorf("report input is required (--input or REPORT_INPUT)")
	}

	return jobs.NewReportJob(
		a.cfg.Report.Schedule,
		a.cfg.Report.InputPath,
		a.cfg.Report.OutputDir,
		a.orchestrator,
		a.preparer,
		a.log,
	), nil
}

func runScheduleStart(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	job, err := newReportJob(a)
	if err != nil {
		return err
	}
	if !a.cfg.Report.Enabled() {
		return fmt.Errorf("REPORT_SCHEDULE is not set")
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	sched.Start()
	a.log.WithFields(map[string]interface{}{
		"job":      job.Name(),
		"schedule": job.Schedule(),
		"next_run": sched.NextRun(job.Name()).Format(time.RFC3339),
	}).Info("Scheduler running")

	<-cmd.Context().Done()
	sched.Stop()

	for name, stats := range sched.Stats() {
		a.log.WithFields(map[string]interface{}{
			"job":          name,
			"total_runs":   stats.TotalRuns,
			"failures":     stats.FailureCount,
			"success_rate": stats.SuccessRate,
		}).Info("Job summary")
	}
	return nil
}

func runScheduleRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	job, err := newReportJob(a)
	if err != nil {
		return err
	}

	path, err := job.Generate(cmd.Context())
	if err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Report written: %s", path))
	return nil
}
