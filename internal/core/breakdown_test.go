package core

import "testing"

func TestBreakdownByMonthStrictValidity(t *testing.T) {
	records := []Record{
		{Date: "2024-01-15", Category: "Market", Amount: "100"},
		{Date: "2024-01-20", Category: "bogus", Amount: "abc"}, // bad amount: skipped here, counted by AggregateByCategory
		{Date: "2024-01-21", Category: "", Amount: "10"},       // missing category: skipped
		{Date: "nope", Category: "Taxi", Amount: "10"},         // bad date: skipped
	}
	got := BreakdownByMonth(records)

	jan, ok := got["2024-01"]
	if !ok {
		t.Fatalf("expected 2024-01 in breakdown, got %v", got)
	}
	if len(jan) != 1 || jan[Essentials] != 100 {
		t.Fatalf("2024-01 = %v, want only Essentials 100", jan)
	}
}

func TestBreakdownByMonthAbsentMonthIsNoData(t *testing.T) {
	got := BreakdownByMonth([]Record{
		{Date: "2024-05-01", Category: "Market", Amount: "10"},
	})
	if _, ok := got["2024-04"]; ok {
		t.Fatalf("month with no rows must be absent, not zero")
	}
}

func TestBreakdownByMonthRoundsLeaves(t *testing.T) {
	got := BreakdownByMonth([]Record{
		{Date: "2024-05-01", Category: "Coffee", Amount: "1.111"},
		{Date: "2024-05-02", Category: "Coffee", Amount: "2.222"},
	})
	if v := got["2024-05"][Essentials]; v != 3.33 {
		t.Fatalf("leaf total = %v, want 3.33", v)
	}
}

func TestBreakdownByMonthAccumulatesAcrossMonths(t *testing.T) {
	got := BreakdownByMonth([]Record{
		{Date: "2024-05-01", Category: "Market", Amount: "10"},
		{Date: "2024-06-01", Category: "Market", Amount: "20"},
		{Date: "2024-06-15", Category: "Taxi", Amount: "5"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 months, got %v", got)
	}
	if got["2024-06"][Essentials] != 20 || got["2024-06"][Transport] != 5 {
		t.Fatalf("2024-06 = %v", got["2024-06"])
	}
}
