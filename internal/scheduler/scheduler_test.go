package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/pkg/logger"
)

type stubJob struct {
	name     string
	schedule string
	errs     []error // 호출 순서대로 반환, 소진 후 nil
	calls    atomic.Int32
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(context.Context) error {
	n := int(j.calls.Add(1)) - 1
	if n < len(j.errs) {
		return j.errs[n]
	}
	return nil
}

func newTestScheduler() *Scheduler {
	return NewWithConfig(Config{MaxRetries: 2, RetryDelay: 0}, logger.Nop())
}

func TestAddJob(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&stubJob{name: "b", schedule: "@monthly"}))
	require.NoError(t, s.AddJob(&stubJob{name: "a", schedule: "0 6 1 * *"}))

	assert.Error(t, s.AddJob(&stubJob{name: "a", schedule: "@daily"}), "duplicate name")
	assert.Error(t, s.AddJob(&stubJob{name: "c", schedule: "not a schedule"}))
	assert.Equal(t, []string{"a", "b"}, s.Jobs())
}

func TestRemoveJob(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&stubJob{name: "a", schedule: "@daily"}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Empty(t, s.Jobs())
	assert.Error(t, s.RemoveJob("a"))
}

func TestRunNow_RetriesTransientErrors(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "flaky", schedule: "@daily", errs: []error{errors.New("disk busy")}}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "flaky")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, int32(2), job.calls.Load())
}

func TestRunNow_DoesNotRetryInputErrors(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{
		name:     "bad-input",
		schedule: "@daily",
		errs:     []error{fmt.Errorf("prepare: %w", contracts.ErrInvalidSeries)},
	}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "bad-input")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.Error, "invalid revenue series")
}

func TestRunNow_GivesUpAfterMaxRetries(t *testing.T) {
	s := newTestScheduler()
	boom := errors.New("boom")
	job := &stubJob{name: "broken", schedule: "@daily", errs: []error{boom, boom, boom, boom}}
	require.NoError(t, s.AddJob(job))

	result, err := s.RunNow(context.Background(), "broken")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.Attempts)
}

func TestRunNow_UnknownJob(t *testing.T) {
	_, err := newTestScheduler().RunNow(context.Background(), "missing")
	assert.Error(t, err)
}

func TestStatsAndHistory(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "report", schedule: "@monthly", errs: []error{contracts.ErrEmptySeries}}
	require.NoError(t, s.AddJob(job))

	_, _ = s.RunNow(context.Background(), "report") // 실패 (입력 오류)
	_, _ = s.RunNow(context.Background(), "report") // 성공

	stats := s.Stats()["report"]
	assert.Equal(t, 2, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, 1, stats.FailureCount)
	assert.InDelta(t, 0.5, stats.SuccessRate, 1e-12)
	require.NotNil(t, stats.LastSuccess)
	assert.Nil(t, stats.LastFailure)

	history, err := s.History("report")
	require.NoError(t, err)
	assert.Len(t, history.Results, 2)
}

func TestJobHistory_KeepsLatest(t *testing.T) {
	var h JobHistory
	for i := 0; i < maxHistory+5; i++ {
		h.AddResult(JobResult{Attempts: i, Success: i%2 == 0})
	}

	assert.Len(t, h.Results, maxHistory)
	assert.Equal(t, 5, h.Results[0].Attempts)
	assert.Len(t, h.Latest(3), 3)
	assert.Equal(t, maxHistory+4, h.Latest(1)[0].Attempts)
}

func TestNextRun(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&stubJob{name: "a", schedule: "@daily"}))

	s.Start()
	defer s.Stop()

	assert.False(t, s.NextRun("a").IsZero())
	assert.True(t, s.NextRun("missing").IsZero())
}
