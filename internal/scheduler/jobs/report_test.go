package jobs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/insight"
	"github.com/wonny/revenue-risk/internal/pipeline"
	"github.com/wonny/revenue-risk/internal/pipelineconfig"
	"github.com/wonny/revenue-risk/internal/series"
	"github.com/wonny/revenue-risk/pkg/logger"
)

const salesCSV = "date,revenue\n" +
	"2024-01-31,1000\n2024-02-29,1050\n2024-03-31,1100\n" +
	"2024-04-30,1150\n2024-05-31,1200\n2024-06-30,1250\n"

func newReportJob(t *testing.T, csv string) (*ReportJob, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(input, []byte(csv), 0o644))

	log := logger.Nop()
	orchestrator := pipeline.New(pipelineconfig.Default(), log, pipeline.WithNarrator(insight.NewNarrator()))
	job := NewReportJob("@monthly", input, filepath.Join(dir, "reports"), orchestrator, series.NewPreparer(log.Zerolog()), log)
	job.now = func() time.Time { return time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC) }
	return job, dir
}

func TestReportJob_Generate(t *testing.T) {
	job, _ := newReportJob(t, salesCSV)

	path, err := job.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "report-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))

	hash, err := pipelineconfig.Default().Hash()
	require.NoError(t, err)

	assert.Equal(t, hash, report.ConfigHash)
	assert.Equal(t, time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC), report.GeneratedAt)
	require.NotNil(t, report.Result)
	assert.Len(t, report.Result.Forecast.Points, 3)
	assert.Equal(t, contracts.RiskLow, report.Response.Risk)
	assert.NotEmpty(t, report.Response.Insight)
	assert.Contains(t, path, report.RunID)
}

func TestReportJob_RunTwiceProducesSameResult(t *testing.T) {
	job, _ := newReportJob(t, salesCSV)

	first, err := job.Generate(context.Background())
	require.NoError(t, err)
	second, err := job.Generate(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	read := func(path string) Report {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var r Report
		require.NoError(t, json.Unmarshal(data, &r))
		return r
	}

	assert.Equal(t, read(first).Result, read(second).Result)
}

func TestReportJob_InputErrors(t *testing.T) {
	job, _ := newReportJob(t, "date,revenue\n")

	err := job.Run(context.Background())
	assert.ErrorIs(t, err, contracts.ErrEmptySeries)

	job.inputPath = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, job.Run(context.Background()))
}

func TestReportJob_Metadata(t *testing.T) {
	job, _ := newReportJob(t, salesCSV)
	assert.Equal(t, "revenue_report", job.Name())
	assert.Equal(t, "@monthly", job.Schedule())
}
