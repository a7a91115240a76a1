package pipeline

import (
	"time"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// 실행 결과 분류 (메트릭 라벨)
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid_input"
	OutcomeError   = "error"
)

// Recorder 파이프라인 실행 지표 수집기
// 구현은 pkg/metrics (Prometheus). 기본값은 아무것도 하지 않음
type Recorder interface {
	ObserveStage(stage contracts.Stage, d time.Duration)
	RecordRun(outcome string, label contracts.RiskLabel)
	RecordDegraded()
	RecordAnnotation(scenario contracts.Scenario)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(contracts.Stage, time.Duration) {}
func (nopRecorder) RecordRun(string, contracts.RiskLabel)       {}
func (nopRecorder) RecordDegraded()                             {}
func (nopRecorder) RecordAnnotation(contracts.Scenario)         {}
