package core

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-15", true},
		{"2024-09-05T10:30:00Z", true},
		{"01/15/2024", true},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"not a date", false},
		{"", false},
	}
	for i, tc := range cases {
		if _, ok := ParseDate(tc.in); ok != tc.ok {
			t.Fatalf("case %d: ParseDate(%q) ok = %v, want %v", i, tc.in, ok, tc.ok)
		}
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"100", 100, true},
		{"127.45", 127.45, true},
		{"-42.5", -42.5, true},
		{" 12 ", 12, true},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for i, tc := range cases {
		got, ok := ParseAmount(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("case %d: ParseAmount(%q) = (%v, %v), want (%v, %v)", i, tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRecordValid(t *testing.T) {
	cases := []struct {
		r  Record
		ok bool
	}{
		{Record{Date: "2024-01-15", Category: "Market", Amount: "100"}, true},
		{Record{Date: "2024-01-15", Amount: "100"}, true}, // category not required for validity
		{Record{Date: "bogus", Category: "Market", Amount: "100"}, false},
		{Record{Date: "2024-01-15", Category: "Market", Amount: "abc"}, false},
		{Record{}, false},
	}
	for i, tc := range cases {
		if got := tc.r.Valid(); got != tc.ok {
			t.Fatalf("case %d: Valid() = %v, want %v", i, got, tc.ok)
		}
	}
}
