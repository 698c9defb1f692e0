package core

// CategoryTotal accumulates one bucket of the category overview.
type CategoryTotal struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// CategoryTotals maps each bucket seen in the data to its running
// count and sum. Buckets with no rows are absent, never zero-valued.
type CategoryTotals map[Category]CategoryTotal

// AggregateByCategory folds the record sequence into per-bucket counts
// and totals. A row is included as soon as its date parses; an amount
// that does not parse contributes 0 to the total but still bumps the
// count. That is looser than Record.Valid: the overview
// reports how many transactions landed in a bucket even when the
// export mangled an amount cell. BreakdownByMonth is the strict one.
func AggregateByCategory(records []Record) CategoryTotals {
	totals := make(CategoryTotals)
	for _, r := range records {
		if _, ok := ParseDate(r.Date); !ok {
			continue
		}
		amount, ok := ParseAmount(r.Amount)
		if !ok {
			amount = 0
		}
		bucket := Normalize(r.Category)
		t := totals[bucket]
		t.Count++
		t.TotalAmount += amount
		totals[bucket] = t
	}
	return totals
}
