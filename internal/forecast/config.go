package forecast

// Config 추세 예측 설정
// ⭐ SSOT: 평활 가중치/안전 제약 상수는 여기서만 정의. 하이퍼파라미터 탐색 없음
type Config struct {
	// Alpha 레벨 평활 가중치
	Alpha float64 `yaml:"alpha" json:"alpha" default:"0.8" validate:"gt=0,lt=1"`
	// Beta 추세 평활 가중치
	Beta float64 `yaml:"beta" json:"beta" default:"0.4" validate:"gt=0,lt=1"`
	// SeasonalPeriods 계절 주기 (월별=12). 설정으로만 존재하며 코어에서 추정/적용하지 않음
	SeasonalPeriods int `yaml:"seasonal_periods" json:"seasonal_periods" default:"12" validate:"gte=1"`
	// MinPointsForModel 이 개수 미만이면 마지막 값 유지 폴백
	MinPointsForModel int `yaml:"min_points_for_model" json:"min_points_for_model" default:"3" validate:"gte=2"`
	// MaxHorizon 최대 예측 기간 (개월)
	MaxHorizon int `yaml:"max_horizon" json:"max_horizon" default:"3" validate:"gte=1,lte=3"`
	// RecentWindow 최근 평균 변화 계산에 쓰는 월간 변화 개수
	RecentWindow int `yaml:"recent_window" json:"recent_window" default:"3" validate:"gte=1"`
	// MaxReboundMultiplier 하락/보합 추세에서 허용하는 상승폭 배수 (최근 평균 절대 변화 대비)
	MaxReboundMultiplier float64 `yaml:"max_rebound_multiplier" json:"max_rebound_multiplier" default:"3" validate:"gt=0"`
	// FloorFactor 과거 최저값 대비 하한 배수
	FloorFactor float64 `yaml:"floor_factor" json:"floor_factor" default:"0.8" validate:"gt=0,lte=1"`
	// FallbackSpread 폴백 모드 밴드 폭 (마지막 값 대비 비율)
	FallbackSpread float64 `yaml:"fallback_spread" json:"fallback_spread" default:"0.05" validate:"gte=0,lt=1"`
	// ZScore 신뢰구간 z (95% ≈ 1.96)
	ZScore float64 `yaml:"z_score" json:"z_score" default:"1.96" validate:"gt=0"`
}

// DefaultConfig 기본 예측 설정
func DefaultConfig() Config {
	return Config{
		Alpha:                0.8,
		Beta:                 0.4,
		SeasonalPeriods:      12,
		MinPointsForModel:    3,
		MaxHorizon:           3,
		RecentWindow:         3,
		MaxReboundMultiplier: 3.0,
		FloorFactor:          0.8,
		FallbackSpread:       0.05,
		ZScore:               1.96,
	}
}
