package consistency

import (
	"fmt"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// Config 정합성 검증 설정
type Config struct {
	// InstabilityThreshold 예측 밴드 폭 / 점 추정 비율이 이 값을 넘으면 "불안정"
	InstabilityThreshold float64 `yaml:"instability_threshold" json:"instability_threshold" default:"0.5" validate:"gt=0"`
	// FlatTolerance 첫 예측값 대비 상대 변화가 이 이하이면 보합으로 간주
	FlatTolerance float64 `yaml:"flat_tolerance" json:"flat_tolerance" default:"0.000000001" validate:"gte=0,lt=1"`
}

// DefaultConfig 기본 정합성 설정
func DefaultConfig() Config {
	return Config{
		InstabilityThreshold: 0.5,
		FlatTolerance:        1e-9,
	}
}

// ValidateConfig 설정 유효성 검사
func ValidateConfig(config Config) error {
	if config.InstabilityThreshold <= 0 {
		return fmt.Errorf("%w: InstabilityThreshold must be > 0", contracts.ErrInvalidConfig)
	}
	if config.FlatTolerance < 0 || config.FlatTolerance >= 1 {
		return fmt.Errorf("%w: FlatTolerance must be within [0, 1)", contracts.ErrInvalidConfig)
	}
	return nil
}
