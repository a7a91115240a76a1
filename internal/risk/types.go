package risk

import (
	"fmt"
	"math"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// =============================================================================
// Config
// =============================================================================

// Weights 복합 점수 가중치 (합계 1)
type Weights struct {
	Volatility float64 `yaml:"volatility" json:"volatility" default:"0.4" validate:"gte=0,lte=1"`
	Trend      float64 `yaml:"trend" json:"trend" default:"0.3" validate:"gte=0,lte=1"`
	Drawdown   float64 `yaml:"drawdown" json:"drawdown" default:"0.3" validate:"gte=0,lte=1"`
}

// Thresholds 등급 경계 (하한 포함, 상한 미포함)
// score < Medium → Low, Medium <= score < High → Medium, score >= High → High
type Thresholds struct {
	Medium float64 `yaml:"medium" json:"medium" default:"30" validate:"gt=0,lte=100"`
	High   float64 `yaml:"high" json:"high" default:"60" validate:"gt=0,lte=100"`
}

// Config 리스크 점수 설정
// ⭐ SSOT: 가중치/경계값은 여기서만 정의
type Config struct {
	Weights    Weights    `yaml:"weights" json:"weights"`
	Thresholds Thresholds `yaml:"thresholds" json:"thresholds"`
	// TrendScale 월간 하락 모멘텀(%) → 추세 위험 점수 배수 (월 -1% → 10점)
	TrendScale float64 `yaml:"trend_scale" json:"trend_scale" default:"10" validate:"gt=0"`
}

// DefaultConfig 기본 리스크 설정 (0.40/0.30/0.30, 30/60)
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Volatility: 0.40,
			Trend:      0.30,
			Drawdown:   0.30,
		},
		Thresholds: Thresholds{
			Medium: 30,
			High:   60,
		},
		TrendScale: 10,
	}
}

// weightSumTolerance 가중치 합 허용 오차
const weightSumTolerance = 1e-6

// ValidateConfig 설정 유효성 검사 (필드 간 제약)
func ValidateConfig(config Config) error {
	w := config.Weights
	if w.Volatility < 0 || w.Trend < 0 || w.Drawdown < 0 {
		return fmt.Errorf("%w: weights must be >= 0", contracts.ErrInvalidConfig)
	}
	if sum := w.Volatility + w.Trend + w.Drawdown; math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1, got %.4f", contracts.ErrInvalidConfig, sum)
	}
	if config.Thresholds.Medium <= 0 || config.Thresholds.High > 100 {
		return fmt.Errorf("%w: thresholds must be within (0, 100]", contracts.ErrInvalidConfig)
	}
	if config.Thresholds.Medium >= config.Thresholds.High {
		return fmt.Errorf("%w: medium threshold %.2f must be below high threshold %.2f",
			contracts.ErrInvalidConfig, config.Thresholds.Medium, config.Thresholds.High)
	}
	if config.TrendScale <= 0 {
		return fmt.Errorf("%w: TrendScale must be > 0", contracts.ErrInvalidConfig)
	}
	return nil
}

// =============================================================================
// Score Breakdown
// =============================================================================

// Breakdown 복합 점수 구성 (각 항목은 [0,100] 로 제한 후 가중)
type Breakdown struct {
	VolatilityTerm float64 `json:"volatility_term"`
	TrendTerm      float64 `json:"trend_term"`
	DrawdownTerm   float64 `json:"drawdown_term"`
}

// Total 가중 합계
func (b Breakdown) Total(w Weights) float64 {
	return w.Volatility*b.VolatilityTerm + w.Trend*b.TrendTerm + w.Drawdown*b.DrawdownTerm
}
