package contracts

import "errors"

// =============================================================================
// Sentinel Errors
// =============================================================================

// ⭐ SSOT: 코어 파이프라인의 입력 오류는 이 값들로만 표현
// 호출부는 errors.Is 로 구분하고, 각 레이어는 %w 로 감싸서 전파
var (
	// ErrEmptySeries 포인트가 0개인 시계열 (치명적, 추정하지 않음)
	ErrEmptySeries = errors.New("empty revenue series")
	// ErrInvalidSeries 구조적으로 잘못된 시계열 (비양수, NaN, 기간 역전/중복/누락)
	ErrInvalidSeries = errors.New("invalid revenue series")
	// ErrInvalidHorizon 예측 기간이 허용 범위 밖
	ErrInvalidHorizon = errors.New("invalid forecast horizon")
	// ErrInvalidConfig 설정 값 오류
	ErrInvalidConfig = errors.New("invalid configuration")
)

// IsInputError 호출자 입력 문제로 인한 오류인지 여부 (API 400 매핑용)
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptySeries) ||
		errors.Is(err, ErrInvalidSeries) ||
		errors.Is(err, ErrInvalidHorizon)
}
