// Package core implements the aggregation pipeline over uploaded
// transaction records: category totals, the trailing-12-month series,
// the day-aligned month comparison, the savings projection, and the
// per-month category breakdown.
//
// Every function here is pure: records are treated as a read-only view,
// the reference "now" is an explicit anchor parameter, and nothing is
// kept between calls. All of it is safe for concurrent use.
package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one raw CSV row. Date, Category and Amount arrive as
// uninterpreted strings; any extra columns a bank statement carries are
// kept for callers but never read by the aggregators.
type Record struct {
	Date     string
	Category string
	Amount   string
	Extra    map[string]string
}

// dateLayouts are the accepted date formats, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
}

// ParseDate parses the record date field into a calendar date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses the record amount field into a finite number.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Valid reports whether the record has a parseable date and a finite
// amount. Aggregators drop invalid rows silently; a malformed statement
// line only shrinks the aggregates, it never fails a request.
func (r Record) Valid() bool {
	if _, ok := ParseDate(r.Date); !ok {
		return false
	}
	_, ok := ParseAmount(r.Amount)
	return ok
}

// round2 rounds to two fractional digits, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
