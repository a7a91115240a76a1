package contracts

import (
	"fmt"
	"math"
	"time"
)

// RevenuePoint 월별 매출 포인트 (월말 기준)
type RevenuePoint struct {
	Period time.Time `json:"period"` // 월말 (UTC)
	Value  float64   `json:"value"`  // 매출 (> 0)
}

// RevenueSeries 월별 매출 시계열
// ⭐ SSOT: 코어에 전달된 이후에는 불변. 각 컴포넌트는 Values() 복사본만 사용
type RevenueSeries struct {
	Points []RevenuePoint `json:"points"`
}

// NewRevenueSeries 월말 기간과 값으로 시계열 생성 (입력 슬라이스는 복사)
func NewRevenueSeries(points []RevenuePoint) RevenueSeries {
	cp := make([]RevenuePoint, len(points))
	copy(cp, points)
	return RevenueSeries{Points: cp}
}

// SeriesFromValues 시작 월부터 연속된 월말 기간을 붙여 시계열 생성
// 테스트와 CLI 데모 입력용
func SeriesFromValues(start time.Time, values []float64) RevenueSeries {
	points := make([]RevenuePoint, len(values))
	for i, v := range values {
		points[i] = RevenuePoint{Period: MonthEnd(start, i), Value: v}
	}
	return RevenueSeries{Points: points}
}

// Len 포인트 개수
func (s RevenueSeries) Len() int {
	return len(s.Points)
}

// Values 값 복사본
func (s RevenueSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// Last 마지막 포인트 (빈 시계열이면 zero value)
func (s RevenueSeries) Last() RevenuePoint {
	if len(s.Points) == 0 {
		return RevenuePoint{}
	}
	return s.Points[len(s.Points)-1]
}

// RecentChange lookback 개월 전 대비 마지막 값의 변화율
// 데이터가 부족하거나 기준값이 0이면 0
func (s RevenueSeries) RecentChange(lookback int) float64 {
	n := len(s.Points)
	if lookback <= 0 || n < lookback {
		return 0
	}
	base := s.Points[n-lookback].Value
	if base == 0 {
		return 0
	}
	return (s.Points[n-1].Value - base) / base
}

// Validate 구조적 불변식 검사
// - 최소 1개 포인트
// - 값은 유한한 양수
// - 기간은 월 단위로 엄격히 증가 (중복/누락 없음)
func (s RevenueSeries) Validate() error {
	if len(s.Points) == 0 {
		return ErrEmptySeries
	}

	for i, p := range s.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return fmt.Errorf("%w: non-numeric value at index %d", ErrInvalidSeries, i)
		}
		if p.Value <= 0 {
			return fmt.Errorf("%w: non-positive value %.2f at %s", ErrInvalidSeries, p.Value, p.Period.Format("2006-01"))
		}
		if i == 0 {
			continue
		}

		prev := s.Points[i-1].Period
		if !p.Period.After(prev) {
			return fmt.Errorf("%w: period %s does not follow %s", ErrInvalidSeries, p.Period.Format("2006-01"), prev.Format("2006-01"))
		}
		if gap := MonthsBetween(prev, p.Period); gap != 1 {
			return fmt.Errorf("%w: %d month gap between %s and %s", ErrInvalidSeries, gap-1, prev.Format("2006-01"), p.Period.Format("2006-01"))
		}
	}

	return nil
}

// =============================================================================
// Month Helpers
// =============================================================================

// MonthEnd t가 속한 달에서 offset 개월 이동한 달의 말일 (UTC, 00:00)
func MonthEnd(t time.Time, offset int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1)
}

// MonthsBetween a와 b 사이의 달력 월 차이 (b - a)
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
