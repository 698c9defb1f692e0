package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"insight/internal/advice"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "insight.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndGetReport(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveReport(ctx, Report{
		Filename:            "statement.csv",
		RowCount:            42,
		ValidRows:           40,
		Anchor:              "2024-09-15",
		AverageMonthlySpend: 812.5,
	})
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected non-zero report id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
	if saved.DigestedAt != nil {
		t.Fatal("expected new report to be undigested")
	}

	got, err := repo.GetReport(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Filename != "statement.csv" || got.RowCount != 42 || got.ValidRows != 40 {
		t.Fatalf("unexpected report: %+v", got)
	}
	if got.AverageMonthlySpend != 812.5 {
		t.Fatalf("AverageMonthlySpend = %v, want 812.5", got.AverageMonthlySpend)
	}
}

func TestGetReportNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetReport(context.Background(), 999)
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestListReportsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"first.csv", "second.csv", "third.csv"} {
		if _, err := repo.SaveReport(ctx, Report{Filename: name, Anchor: "2024-09-01"}); err != nil {
			t.Fatalf("SaveReport(%s): %v", name, err)
		}
	}

	reports, err := repo.ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if reports[0].Filename != "third.csv" || reports[1].Filename != "second.csv" {
		t.Fatalf("unexpected order: %s, %s", reports[0].Filename, reports[1].Filename)
	}
}

func TestMarkDigested(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveReport(ctx, Report{Filename: "a.csv", Anchor: "2024-09-01"})
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	if err := repo.MarkDigested(ctx, saved.ID); err != nil {
		t.Fatalf("MarkDigested: %v", err)
	}

	got, err := repo.GetReport(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.DigestedAt == nil {
		t.Fatal("expected digested_at to be set")
	}

	if err := repo.MarkDigested(ctx, 999); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestSaveAndListAdvice(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveReport(ctx, Report{Filename: "a.csv", Anchor: "2024-09-01"})
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	suggestions := []advice.Advice{
		{Advice: "Cook at home twice a week", Estimate: 120},
		{Advice: "Drop the unused gym membership", Estimate: 45},
	}
	if err := repo.SaveAdvice(ctx, saved.ID, suggestions); err != nil {
		t.Fatalf("SaveAdvice: %v", err)
	}

	got, err := repo.ListAdvice(ctx, saved.ID)
	if err != nil {
		t.Fatalf("ListAdvice: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(advice) = %d, want 2", len(got))
	}
	if got[0].Advice != "Cook at home twice a week" || got[0].Estimate != 120 {
		t.Fatalf("unexpected first suggestion: %+v", got[0])
	}
}
