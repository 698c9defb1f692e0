package core

import "time"

// MonthlyPoint is one month of the trailing series. Month is the
// canonical YYYY-MM key, Label the short month name charts put on the
// axis.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// MonthlySummary is the trailing-12-month series (oldest first,
// zero-filled) together with the arithmetic mean of the 12 totals.
type MonthlySummary struct {
	Series  []MonthlyPoint `json:"series"`
	Average float64        `json:"average"`
}

// MonthKey returns the canonical YYYY-MM identifier for t's calendar
// month. Two dates in the same month always produce the same key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// BuildMonthlySeries sums valid records per calendar month and emits
// the 12 consecutive months ending at the anchor month, oldest to
// newest. Months with no data read 0. The average divides the 12-month
// sum by 12 (zero months count) and is returned unrounded; display
// rounding is the caller's business.
func BuildMonthlySeries(records []Record, anchor time.Time) MonthlySummary {
	sums := make(map[string]float64)
	for _, r := range records {
		d, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		amount, ok := ParseAmount(r.Amount)
		if !ok {
			continue
		}
		sums[MonthKey(d)] += amount
	}

	// First of the anchor month, so AddDate month arithmetic cannot
	// normalize across a short month.
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary := MonthlySummary{Series: make([]MonthlyPoint, 0, 12)}
	var sum float64
	for i := 11; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		key := MonthKey(m)
		total := sums[key]
		sum += total
		summary.Series = append(summary.Series, MonthlyPoint{
			Month: key,
			Label: m.Format("Jan"),
			Total: total,
		})
	}
	summary.Average = sum / 12
	return summary
}
