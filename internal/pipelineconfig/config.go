package pipelineconfig

import (
	"github.com/wonny/revenue-risk/internal/consistency"
	"github.com/wonny/revenue-risk/internal/forecast"
	"github.com/wonny/revenue-risk/internal/risk"
)

// Config 파이프라인 전체 수치 설정
// ⭐ SSOT: 각 컴포넌트 생성자에 그대로 전달되는 불변 값. 실행 중 변경 없음
type Config struct {
	// Horizon 기본 예측 기간 (개월)
	Horizon     int                `yaml:"horizon" json:"horizon" default:"3" validate:"gte=1,lte=3"`
	Forecast    forecast.Config    `yaml:"forecast" json:"forecast"`
	Risk        risk.Config        `yaml:"risk" json:"risk"`
	Consistency consistency.Config `yaml:"consistency" json:"consistency"`
}

// Default 기본 파이프라인 설정
func Default() Config {
	return Config{
		Horizon:     3,
		Forecast:    forecast.DefaultConfig(),
		Risk:        risk.DefaultConfig(),
		Consistency: consistency.DefaultConfig(),
	}
}

// WithHorizon 기본 예측 기간만 바꾼 복사본
func (c Config) WithHorizon(horizon int) Config {
	c.Horizon = horizon
	return c
}
