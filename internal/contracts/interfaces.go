package contracts

// TrendForecaster 추세 예측 인터페이스
// ⭐ SSOT: 구현은 internal/forecast
type TrendForecaster interface {
	Forecast(series RevenueSeries, horizon int) (ForecastResult, error)
}

// RiskScorer 리스크 점수 인터페이스
// ⭐ SSOT: 구현은 internal/risk
type RiskScorer interface {
	Score(series RevenueSeries) (RiskMetrics, error)
}

// ConsistencyValidator 정합성 검증 인터페이스
// ⭐ SSOT: 구현은 internal/consistency
type ConsistencyValidator interface {
	Validate(forecast ForecastResult, risk RiskMetrics) *ConsistencyAnnotation
}

// Narrator 서술형 인사이트 생성 인터페이스 (파이프라인 외부 협력자)
// ⭐ SSOT: 구현은 internal/insight
type Narrator interface {
	Build(result *PipelineResult) string
}
