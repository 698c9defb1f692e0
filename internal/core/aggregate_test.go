package core

import (
	"reflect"
	"testing"
)

func TestAggregateByCategory(t *testing.T) {
	records := []Record{
		{Date: "2024-01-15", Category: "Market", Amount: "100"},
		{Date: "2024-01-20", Category: "bogus", Amount: "abc"},
	}
	got := AggregateByCategory(records)
	want := CategoryTotals{
		Essentials: {Count: 1, TotalAmount: 100},
		Other:      {Count: 1, TotalAmount: 0}, // bad amount counts, contributes 0
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAggregateByCategoryEmpty(t *testing.T) {
	if got := AggregateByCategory(nil); len(got) != 0 {
		t.Fatalf("expected empty mapping, got %v", got)
	}
}

func TestAggregateByCategorySkipsBadDates(t *testing.T) {
	records := []Record{
		{Date: "never", Category: "Market", Amount: "100"},
		{Date: "2024-03-01", Category: "Taxi", Amount: "20"},
		{Date: "2024-03-02", Category: "Taxi", Amount: "30"},
	}
	got := AggregateByCategory(records)
	if len(got) != 1 {
		t.Fatalf("expected only the Transport bucket, got %v", got)
	}
	if tr := got[Transport]; tr.Count != 2 || tr.TotalAmount != 50 {
		t.Fatalf("Transport = %+v, want count 2 total 50", tr)
	}
}

func TestAggregateByCategoryIdempotent(t *testing.T) {
	records := []Record{
		{Date: "2024-01-15", Category: "Market", Amount: "100"},
		{Date: "2024-02-15", Category: "Travel", Amount: "250.50"},
	}
	first := AggregateByCategory(records)
	second := AggregateByCategory(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different output: %v vs %v", first, second)
	}
}
