package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"insight/internal/core"
	"insight/internal/log"
	"insight/internal/storage"
)

type fakeRepo struct {
	saved  []storage.Report
	nextID int64
	err    error
}

func (f *fakeRepo) SaveReport(_ context.Context, report storage.Report) (storage.Report, error) {
	if f.err != nil {
		return storage.Report{}, f.err
	}
	f.nextID++
	report.ID = f.nextID
	f.saved = append(f.saved, report)
	return report, nil
}

type fakePublisher struct {
	published []int64
	err       error
}

func (f *fakePublisher) PublishReportCreated(_ context.Context, reportID int64) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, reportID)
	return nil
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func sampleRecords() []core.Record {
	return []core.Record{
		{Date: "2024-08-05", Category: "Market", Amount: "100"},
		{Date: "2024-08-12", Category: "Taxi", Amount: "40"},
		{Date: "bogus", Category: "Market", Amount: "10"},
	}
}

func TestAnalyzeStoresAndPublishes(t *testing.T) {
	repo := &fakeRepo{}
	events := &fakePublisher{}
	svc := NewReportService(repo, events, testLogger())

	anchor := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	report, err := svc.Analyze(context.Background(), ReportInput{
		Filename: "statement.csv",
		Records:  sampleRecords(),
		Anchor:   anchor,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if report.ID != 1 {
		t.Fatalf("report.ID = %d, want 1", report.ID)
	}
	if got := report.Insights[core.Essentials].TotalAmount; got != 100 {
		t.Fatalf("Essentials total = %v, want 100", got)
	}
	if len(report.MonthlySpending.Series) != 12 {
		t.Fatalf("series length = %d, want 12", len(report.MonthlySpending.Series))
	}
	if len(report.Comparing) != 30 {
		t.Fatalf("comparing rows = %d, want 30 for September", len(report.Comparing))
	}
	if report.SavingsProjection != nil {
		t.Fatal("expected no projection without income")
	}

	if len(repo.saved) != 1 {
		t.Fatalf("saved reports = %d, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.RowCount != 3 || saved.ValidRows != 2 {
		t.Fatalf("row counts = %d/%d, want 3/2", saved.RowCount, saved.ValidRows)
	}
	if saved.Anchor != "2024-09-15" {
		t.Fatalf("anchor = %q, want 2024-09-15", saved.Anchor)
	}

	if len(events.published) != 1 || events.published[0] != 1 {
		t.Fatalf("published = %v, want [1]", events.published)
	}
}

func TestAnalyzeWithIncomeAddsProjection(t *testing.T) {
	svc := NewReportService(&fakeRepo{}, nil, testLogger())

	income := 3000.0
	anchor := time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC)
	report, err := svc.Analyze(context.Background(), ReportInput{
		Filename:      "statement.csv",
		Records:       sampleRecords(),
		Anchor:        anchor,
		MonthlyIncome: &income,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(report.SavingsProjection) != 8 {
		t.Fatalf("projection points = %d, want 8", len(report.SavingsProjection))
	}
}

func TestAnalyzeRejectsInvalidIncome(t *testing.T) {
	svc := NewReportService(&fakeRepo{}, nil, testLogger())

	income := 0.0
	_, err := svc.Analyze(context.Background(), ReportInput{
		Filename:      "statement.csv",
		Records:       sampleRecords(),
		Anchor:        time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
		MonthlyIncome: &income,
	})
	if !errors.Is(err, core.ErrInvalidIncome) {
		t.Fatalf("expected ErrInvalidIncome, got %v", err)
	}
}

func TestAnalyzeSurvivesPublishFailure(t *testing.T) {
	events := &fakePublisher{err: errors.New("broker down")}
	svc := NewReportService(&fakeRepo{}, events, testLogger())

	_, err := svc.Analyze(context.Background(), ReportInput{
		Filename: "statement.csv",
		Records:  sampleRecords(),
		Anchor:   time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}

func TestAnalyzeNilPublisher(t *testing.T) {
	svc := NewReportService(&fakeRepo{}, nil, testLogger())

	_, err := svc.Analyze(context.Background(), ReportInput{
		Filename: "statement.csv",
		Records:  sampleRecords(),
		Anchor:   time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
}
