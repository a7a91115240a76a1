package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/pipeline"
	"github.com/wonny/revenue-risk/internal/series"
	"github.com/wonny/revenue-risk/pkg/logger"
)

// Report 정기 리포트 파일 내용
// RunID/GeneratedAt 은 봉투에만 존재하고 Result 는 같은 입력이면 항상 동일
type Report struct {
	RunID       string                     `json:"run_id"`
	GeneratedAt time.Time                  `json:"generated_at"`
	InputPath   string                     `json:"input_path"`
	ConfigHash  string                     `json:"config_hash"`
	Result      *contracts.PipelineResult  `json:"result"`
	Response    contracts.ForecastResponse `json:"response"`
}

// ReportJob 매출 CSV 로 파이프라인을 다시 실행해 JSON 리포트 작성
// Schedule: REPORT_SCHEDULE (예: 매월 1일 06:00)
type ReportJob struct {
	schedule     string
	inputPath    string
	outputDir    string
	orchestrator *pipeline.Orchestrator
	preparer     *series.Preparer
	logger       *logger.Logger
	now          func() time.Time
}

// NewReportJob creates a new report job
func NewReportJob(
	schedule, inputPath, outputDir string,
	orchestrator *pipeline.Orchestrator,
	preparer *series.Preparer,
	log *logger.Logger,
) *ReportJob {
	return &ReportJob{
		schedule:     schedule,
		inputPath:    inputPath,
		outputDir:    outputDir,
		orchestrator: orchestrator,
		preparer:     preparer,
		logger:       log.WithField("job", "revenue_report"),
		now:          time.Now,
	}
}

// Name returns the job name
func (j *ReportJob) Name() string {
	return "revenue_report"
}

// Schedule returns the cron schedule
func (j *ReportJob) Schedule() string {
	return j.schedule
}

// Run executes the pipeline and writes report-<run id>.json
func (j *ReportJob) Run(ctx context.Context) error {
	_, err := j.Generate(ctx)
	return err
}

// Generate 리포트를 만들고 작성한 파일 경로 반환
func (j *ReportJob) Generate(ctx context.Context) (string, error) {
	f, err := os.Open(j.inputPath)
	if err != nil {
		return "", fmt.Errorf("open report input: %w", err)
	}
	defer f.Close()

	revenue, err := j.preparer.Read(f)
	if err != nil {
		return "", fmt.Errorf("prepare series from %s: %w", j.inputPath, err)
	}

	result, narrative, err := j.orchestrator.RunWithNarrative(ctx, revenue, j.orchestrator.Config().Horizon)
	if err != nil {
		return "", fmt.Errorf("run pipeline: %w", err)
	}

	hash, err := j.orchestrator.Config().Hash()
	if err != nil {
		return "", fmt.Errorf("hash config: %w", err)
	}

	report := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: j.now().UTC(),
		InputPath:   j.inputPath,
		ConfigHash:  hash,
		Result:      result,
		Response:    contracts.NewForecastResponse(result, narrative),
	}

	path, err := j.write(report)
	if err != nil {
		return "", err
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":     report.RunID,
		"path":       path,
		"risk_label": result.Risk.RiskLabel.String(),
		"scenario":   result.Scenario(),
	}).Info("Revenue report written")

	return path, nil
}

// write 임시 파일에 쓴 뒤 rename (부분 파일 방지)
func (j *ReportJob) write(report Report) (string, error) {
	if err := os.MkdirAll(j.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(j.outputDir, fmt.Sprintf("report-%s.json", report.RunID))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("finalize report: %w", err)
	}
	return path, nil
}
