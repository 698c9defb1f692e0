package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"insight/internal/advice"
	"insight/internal/cache"
	"insight/internal/core"
	"insight/internal/log"
)

// ErrNoPriorMonthData is returned when the statement has no valid rows
// in the month preceding the anchor, so there is nothing to advise on.
var ErrNoPriorMonthData = errors.New("no spending data for the month before the anchor date")

// AdviceRepository persists generated suggestions alongside a report.
type AdviceRepository interface {
	SaveAdvice(ctx context.Context, reportID int64, suggestions []advice.Advice) error
}

type AdviceService struct {
	advisor advice.Advisor
	repo    AdviceRepository
	cache   *cache.LRUCache[[]advice.Advice]
	logger  *log.Logger
}

// NewAdviceService creates an advice service. repo may be nil when
// suggestions should not be persisted, cache may be nil to disable
// memoization.
func NewAdviceService(advisor advice.Advisor, repo AdviceRepository, c *cache.LRUCache[[]advice.Advice], logger *log.Logger) *AdviceService {
	return &AdviceService{
		advisor: advisor,
		repo:    repo,
		cache:   c,
		logger:  logger.WithComponent(log.ComponentAdvice),
	}
}

// Suggest summarizes the month before the anchor and asks the advisor
// for suggestions. It returns the suggestions together with the
// per-category spending they were based on. Identical summaries hit the
// cache instead of the model API. reportID links stored suggestions to
// their report, pass 0 to skip persistence.
func (s *AdviceService) Suggest(ctx context.Context, records []core.Record, monthlyIncome float64, anchor time.Time, reportID int64) ([]advice.Advice, map[core.Category]float64, error) {
	summary, err := summarizePriorMonth(records, monthlyIncome, anchor)
	if err != nil {
		return nil, nil, err
	}

	key := summaryDigest(summary)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.DebugContext(ctx, "Advice cache hit",
				log.FieldOperation, log.OpAdvise,
				log.FieldAdviceLen, len(cached))
			return cached, summary.Categories, nil
		}
	}

	suggestions, err := s.advisor.Suggest(ctx, summary)
	if err != nil {
		return nil, nil, fmt.Errorf("get advice: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, suggestions)
	}
	if s.repo != nil && reportID != 0 {
		if err := s.repo.SaveAdvice(ctx, reportID, suggestions); err != nil {
			s.logger.WarnContext(ctx, "Failed to persist advice",
				log.FieldOperation, log.OpStore,
				log.FieldReportID, reportID,
				log.FieldError, err)
		}
	}

	s.logger.InfoContext(ctx, "Advice generated",
		log.FieldOperation, log.OpAdvise,
		log.FieldMonthKey, core.MonthKey(anchor.AddDate(0, -1, 0)),
		log.FieldAdviceLen, len(suggestions))

	return suggestions, summary.Categories, nil
}

// summarizePriorMonth extracts the category totals for the month
// preceding the anchor from the per-month breakdown.
func summarizePriorMonth(records []core.Record, monthlyIncome float64, anchor time.Time) (advice.Summary, error) {
	prior := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	breakdown := core.BreakdownByMonth(records)

	totals, ok := breakdown[core.MonthKey(prior)]
	if !ok || len(totals) == 0 {
		return advice.Summary{}, ErrNoPriorMonthData
	}

	categories := make(map[core.Category]float64, len(totals))
	for category, total := range totals {
		categories[category] = total
	}

	return advice.Summary{
		Income:     monthlyIncome,
		Categories: categories,
	}, nil
}

// summaryDigest produces a stable cache key for a summary.
func summaryDigest(summary advice.Summary) string {
	names := make([]string, 0, len(summary.Categories))
	for category := range summary.Categories {
		names = append(names, string(category))
	}
	sort.Strings(names)

	h := sha256.New()
	fmt.Fprintf(h, "income=%.2f", summary.Income)
	for _, name := range names {
		fmt.Fprintf(h, ";%s=%.2f", name, summary.Categories[core.Category(name)])
	}
	return hex.EncodeToString(h.Sum(nil))
}
