package contracts

// Pipeline Stage 정의 (SSOT)
// 로그, 메트릭 라벨, 오류 래핑에서 이 상수를 사용
//
// 파이프라인 흐름:
//   Forecast ┐
//            ├→ Consistency → Assemble
//   Risk     ┘

// Stage represents a pipeline stage
type Stage string

const (
	// StageForecast 추세 예측 (internal/forecast)
	StageForecast Stage = "forecast"
	// StageRisk 리스크 점수 (internal/risk)
	StageRisk Stage = "risk"
	// StageConsistency 예측/리스크 정합성 검증 (internal/consistency)
	StageConsistency Stage = "consistency"
	// StageAssemble 결과 조립 (internal/pipeline)
	StageAssemble Stage = "assemble"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// Scenario 정합성 검증 시나리오 플래그
type Scenario string

const (
	ScenarioGrowthHighRisk   Scenario = "growth-forecast-high-risk"
	ScenarioDeclineLowRisk   Scenario = "decline-forecast-low-risk"
	ScenarioWideUncertainLow Scenario = "wide-uncertainty-low-risk"
)

// ConsistencyAnnotation 예측 방향과 리스크 등급이 모순될 때 붙는 주석
// 모순이 없으면 nil (nil 자체가 의미 있는 결과)
type ConsistencyAnnotation struct {
	Scenario    Scenario `json:"scenario"`
	Explanation string   `json:"explanation"`
}

// PipelineResult 파이프라인 1회 실행 결과
// ⭐ SSOT: Orchestrator 가 한 번에 조립하고 이후 변경하지 않음 (영속화 없음)
type PipelineResult struct {
	Forecast       ForecastResult         `json:"forecast"`
	Risk           RiskMetrics            `json:"risk"`
	Consistency    *ConsistencyAnnotation `json:"consistency,omitempty"`
	StabilityIndex float64                `json:"stability_index"` // 100 - CompositeScore
	LastActual     float64                `json:"last_actual"`
	Horizon        int                    `json:"horizon"`
	RecentShortPct float64                `json:"recent_short_pct"` // 3개월 변화율
	RecentLongPct  float64                `json:"recent_long_pct"`  // 6개월 변화율
}

// Scenario 주석의 시나리오 (없으면 빈 문자열)
func (r *PipelineResult) Scenario() string {
	if r == nil || r.Consistency == nil {
		return ""
	}
	return string(r.Consistency.Scenario)
}
