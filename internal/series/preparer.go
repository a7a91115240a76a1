package series

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// Preparer 원시 행 → 월별 RevenueSeries
// ⭐ SSOT: 코어에 전달되는 시계열은 여기서만 만들어짐 (월말, 오름차순, 누락 없음)
type Preparer struct {
	log zerolog.Logger
}

// NewPreparer 생성
func NewPreparer(log zerolog.Logger) *Preparer {
	return &Preparer{
		log: log.With().Str("component", "series.preparer").Logger(),
	}
}

// Prepare 월말 기준으로 묶어 합산하고 오름차순 정렬
// 달 사이 누락이 있거나 월 합계가 0 이하이면 ErrInvalidSeries
func (p *Preparer) Prepare(rows []RawRow) (contracts.RevenueSeries, error) {
	if len(rows) == 0 {
		return contracts.RevenueSeries{}, contracts.ErrEmptySeries
	}

	totals := make(map[time.Time]float64, len(rows))
	for _, row := range rows {
		if math.IsNaN(row.Revenue) || math.IsInf(row.Revenue, 0) {
			return contracts.RevenueSeries{}, fmt.Errorf("%w: line %d: non-numeric revenue", contracts.ErrInvalidSeries, row.Line)
		}
		totals[contracts.MonthEnd(row.Date, 0)] += row.Revenue
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	points := make([]contracts.RevenuePoint, len(months))
	for i, m := range months {
		if i > 0 {
			if gap := contracts.MonthsBetween(months[i-1], m); gap != 1 {
				return contracts.RevenueSeries{}, fmt.Errorf("%w: no revenue for %d month(s) after %s",
					contracts.ErrInvalidSeries, gap-1, months[i-1].Format("2006-01"))
			}
		}
		if totals[m] <= 0 {
			return contracts.RevenueSeries{}, fmt.Errorf("%w: non-positive total %.2f for %s",
				contracts.ErrInvalidSeries, totals[m], m.Format("2006-01"))
		}
		points[i] = contracts.RevenuePoint{Period: m, Value: totals[m]}
	}

	p.log.Debug().
		Int("rows", len(rows)).
		Int("months", len(points)).
		Msg("series prepared")

	return contracts.NewRevenueSeries(points), nil
}

// Read CSV 파싱 + Prepare
func (p *Preparer) Read(r io.Reader) (contracts.RevenueSeries, error) {
	rows, err := ParseCSV(r)
	if err != nil {
		return contracts.RevenueSeries{}, err
	}
	return p.Prepare(rows)
}
