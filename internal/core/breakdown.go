package core

import "log/slog"

// MonthBreakdown maps a YYYY-MM key to the spend per bucket in that
// month, rounded to two decimals. A missing month key means "no data
// for that month": callers must branch on presence and must not read
// an absent month as zero spend.
type MonthBreakdown map[string]map[Category]float64

// BreakdownByMonth accumulates spend per month and bucket. Unlike
// AggregateByCategory this is strict: a row needs a parseable date, a
// non-empty category and a parseable amount, or it is skipped with a
// debug note. This feeds the advice collaborator, where a partially
// parsed row would quietly skew the numbers the model reasons about.
func BreakdownByMonth(records []Record) MonthBreakdown {
	breakdown := make(MonthBreakdown)
	for i, r := range records {
		d, dateOK := ParseDate(r.Date)
		amount, amountOK := ParseAmount(r.Amount)
		if !dateOK || !amountOK || r.Category == "" {
			slog.Debug("Skipping row in monthly breakdown",
				"row", i,
				"date_ok", dateOK,
				"amount_ok", amountOK,
				"has_category", r.Category != "")
			continue
		}
		key := MonthKey(d)
		if breakdown[key] == nil {
			breakdown[key] = make(map[Category]float64)
		}
		breakdown[key][Normalize(r.Category)] += amount
	}
	for _, buckets := range breakdown {
		for c, total := range buckets {
			buckets[c] = round2(total)
		}
	}
	return breakdown
}
