package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// RawRow CSV 한 행 (월 단위 정규화 이전)
type RawRow struct {
	Date    time.Time
	Revenue float64
	Line    int // 원본 CSV 행 번호 (헤더 = 1)
}

// 필수 컬럼 (대소문자 무시)
const (
	ColumnDate    = "date"
	ColumnRevenue = "revenue"
)

// dateLayouts 허용하는 날짜 형식 (순서대로 시도)
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	time.RFC3339,
}

// ParseCSV date,revenue 컬럼을 가진 CSV 를 행 목록으로 파싱
// 헤더 필수, 추가 컬럼은 무시. 형식 오류는 ErrInvalidSeries 로 감싸서 반환
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, contracts.ErrEmptySeries
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", contracts.ErrInvalidSeries, err)
	}

	dateIdx, revenueIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case ColumnDate:
			dateIdx = i
		case ColumnRevenue:
			revenueIdx = i
		}
	}
	if dateIdx < 0 || revenueIdx < 0 {
		return nil, fmt.Errorf("%w: CSV must contain '%s' and '%s' columns",
			contracts.ErrInvalidSeries, ColumnDate, ColumnRevenue)
	}

	var rows []RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", contracts.ErrInvalidSeries, err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if dateIdx >= len(record) || revenueIdx >= len(record) {
			return nil, fmt.Errorf("%w: line %d: missing columns", contracts.ErrInvalidSeries, line)
		}

		date, err := parseDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", contracts.ErrInvalidSeries, line, err)
		}
		revenue, err := parseRevenue(record[revenueIdx])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", contracts.ErrInvalidSeries, line, err)
		}

		rows = append(rows, RawRow{Date: date, Revenue: revenue, Line: line})
	}

	if len(rows) == 0 {
		return nil, contracts.ErrEmptySeries
	}
	return rows, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseRevenue 천 단위 구분자(,) 허용
func parseRevenue(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid revenue %q", s)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
