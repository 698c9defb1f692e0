// Package services orchestrates the aggregation pipeline, persistence
// and event publishing behind the HTTP handlers.
package services

import (
	"context"
	"fmt"
	"time"

	"insight/internal/core"
	"insight/internal/log"
	"insight/internal/storage"
)

// ReportRepository is the slice of storage the report service needs.
type ReportRepository interface {
	SaveReport(ctx context.Context, report storage.Report) (storage.Report, error)
}

// EventPublisher publishes report lifecycle events.
type EventPublisher interface {
	PublishReportCreated(ctx context.Context, reportID int64) error
}

// Report is the full analysis of one uploaded statement.
type Report struct {
	ID                int64                  `json:"id,omitempty"`
	Insights          core.CategoryTotals    `json:"insights"`
	MonthlySpending   core.MonthlySummary    `json:"monthlySpending"`
	Comparing         []core.DayComparison   `json:"comparing"`
	SavingsProjection []core.ProjectionPoint `json:"savingsProjection,omitempty"`
}

// ReportInput carries one upload through the pipeline.
type ReportInput struct {
	Filename      string
	Records       []core.Record
	Anchor        time.Time
	MonthlyIncome *float64
}

type ReportService struct {
	repo   ReportRepository
	events EventPublisher
	logger *log.Logger
}

// NewReportService creates a report service. events may be nil when no
// broker is configured, persistence and analysis still work.
func NewReportService(repo ReportRepository, events EventPublisher, logger *log.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		events: events,
		logger: logger.WithComponent(log.ComponentReport),
	}
}

// Analyze runs the aggregation pipeline over the input, persists the
// report metadata and announces it. Projection errors from a supplied
// income propagate so callers can reject the request.
func (s *ReportService) Analyze(ctx context.Context, in ReportInput) (Report, error) {
	report := Report{
		Insights:        core.AggregateByCategory(in.Records),
		MonthlySpending: core.BuildMonthlySeries(in.Records, in.Anchor),
		Comparing:       core.CompareDaily(in.Records, in.Anchor),
	}

	if in.MonthlyIncome != nil {
		projection, err := core.ProjectSavings(*in.MonthlyIncome, report.MonthlySpending.Average)
		if err != nil {
			return Report{}, err
		}
		report.SavingsProjection = projection
	}

	stored, err := s.repo.SaveReport(ctx, storage.Report{
		Filename:            in.Filename,
		RowCount:            len(in.Records),
		ValidRows:           countValid(in.Records),
		Anchor:              in.Anchor.Format("2006-01-02"),
		AverageMonthlySpend: report.MonthlySpending.Average,
	})
	if err != nil {
		return Report{}, fmt.Errorf("save report: %w", err)
	}
	report.ID = stored.ID

	s.publishCreated(ctx, stored.ID)

	s.logger.InfoContext(ctx, "Report analyzed",
		log.FieldOperation, log.OpUpload,
		log.FieldReportID, stored.ID,
		log.FieldFilename, in.Filename,
		log.FieldRowCount, len(in.Records),
		log.FieldValidRows, stored.ValidRows,
		log.FieldAnchor, stored.Anchor)

	return report, nil
}

// publishCreated never fails the request. Losing an event costs a
// worker digest, not the caller's report.
func (s *ReportService) publishCreated(ctx context.Context, reportID int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishReportCreated(ctx, reportID); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish report created event",
			log.FieldOperation, log.OpPublish,
			log.FieldReportID, reportID,
			log.FieldError, err)
	}
}

func countValid(records []core.Record) int {
	n := 0
	for _, r := range records {
		if r.Valid() {
			n++
		}
	}
	return n
}
