package risk

import (
	"github.com/rs/zerolog"

	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/stats"
)

// Scorer 복합 리스크 점수 계산기 (순수 계산)
// ⭐ SSOT: 변동성/낙폭/모멘텀 → 복합 점수 → 등급
type Scorer struct {
	config Config
	log    zerolog.Logger
}

// NewScorer 기본 설정으로 점수 계산기 생성
func NewScorer(log zerolog.Logger) *Scorer {
	return NewScorerWithConfig(DefaultConfig(), log)
}

// NewScorerWithConfig 커스텀 설정으로 점수 계산기 생성
func NewScorerWithConfig(config Config, log zerolog.Logger) *Scorer {
	return &Scorer{
		config: config,
		log:    log.With().Str("component", "risk.scorer").Logger(),
	}
}

// Config 현재 설정
func (s *Scorer) Config() Config {
	return s.config
}

// Score 시계열 전체 이력으로 리스크 지표 계산
func (s *Scorer) Score(series contracts.RevenueSeries) (contracts.RiskMetrics, error) {
	if series.Len() == 0 {
		return contracts.RiskMetrics{}, contracts.ErrEmptySeries
	}

	values := series.Values()

	metrics := contracts.RiskMetrics{
		VolatilityPercent:       VolatilityPercent(values),
		DrawdownPercent:         DrawdownPercent(values),
		MomentumPercentPerMonth: MomentumPercent(values),
	}

	breakdown := s.Breakdown(metrics)
	metrics.CompositeScore = stats.Clamp(breakdown.Total(s.config.Weights), 0, 100)
	metrics.RiskLabel = Classify(metrics.CompositeScore, s.config.Thresholds)

	s.log.Debug().
		Float64("volatility_term", breakdown.VolatilityTerm).
		Float64("trend_term", breakdown.TrendTerm).
		Float64("drawdown_term", breakdown.DrawdownTerm).
		Float64("composite_score", metrics.CompositeScore).
		Str("risk_label", metrics.RiskLabel.String()).
		Msg("risk scored")

	return metrics, nil
}

// Breakdown 지표를 [0,100] 로 제한한 항목별 점수
// 어느 한 항목도 가중치 이상으로 점수를 지배하지 못함
func (s *Scorer) Breakdown(m contracts.RiskMetrics) Breakdown {
	return Breakdown{
		VolatilityTerm: stats.Clamp(m.VolatilityPercent, 0, 100),
		TrendTerm:      stats.Clamp(TrendRisk(m.MomentumPercentPerMonth, s.config.TrendScale), 0, 100),
		DrawdownTerm:   stats.Clamp(m.DrawdownPercent, 0, 100),
	}
}

// Classify 복합 점수 → 등급 (경계는 하한 포함)
func Classify(score float64, t Thresholds) contracts.RiskLabel {
	switch {
	case score < t.Medium:
		return contracts.RiskLow
	case score < t.High:
		return contracts.RiskMedium
	default:
		return contracts.RiskHigh
	}
}
