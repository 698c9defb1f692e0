package core

import "time"

// DayComparison pairs the spend on one day of the anchor month with
// the spend on the same day number of the month before it.
type DayComparison struct {
	Day           int     `json:"day"`
	CurrentMonth  float64 `json:"currentMonth"`
	PreviousMonth float64 `json:"previousMonth"`
}

// CompareDaily buckets valid records from the anchor month and the
// immediately preceding calendar month by day of month. The result has
// one row per day of the anchor month, days strictly increasing from 1;
// when the previous month is shorter, its missing days read 0. January
// compares against December of the prior year. Per-row totals are
// rounded to two decimals.
func CompareDaily(records []Record, anchor time.Time) []DayComparison {
	curYear, curMonth := anchor.Year(), anchor.Month()
	prev := time.Date(curYear, curMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevYear, prevMonth := prev.Year(), prev.Month()

	current := make(map[int]float64)
	previous := make(map[int]float64)
	for _, r := range records {
		d, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		amount, ok := ParseAmount(r.Amount)
		if !ok {
			continue
		}
		switch {
		case d.Year() == curYear && d.Month() == curMonth:
			current[d.Day()] += amount
		case d.Year() == prevYear && d.Month() == prevMonth:
			previous[d.Day()] += amount
		}
	}

	days := daysInMonth(curYear, curMonth)
	rows := make([]DayComparison, 0, days)
	for day := 1; day <= days; day++ {
		rows = append(rows, DayComparison{
			Day:           day,
			CurrentMonth:  round2(current[day]),
			PreviousMonth: round2(previous[day]),
		})
	}
	return rows
}

// daysInMonth returns the length of the given calendar month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
