// Package storage persists report history in SQLite. It keeps metadata
// about each processed upload and the advice generated for it, never
// the transaction rows themselves.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"insight/internal/advice"

	_ "modernc.org/sqlite"
)

// ErrReportNotFound is returned when a report id does not exist.
var ErrReportNotFound = errors.New("report not found")

// Report is the stored metadata for one processed upload.
type Report struct {
	ID                  int64
	Filename            string
	RowCount            int
	ValidRows           int
	Anchor              string
	AverageMonthlySpend float64
	CreatedAt           time.Time
	DigestedAt          *time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveReport inserts a report row and returns it with id and timestamp set.
func (r *SQLiteRepository) SaveReport(ctx context.Context, report Report) (Report, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reports (filename, row_count, valid_rows, anchor, average_monthly_spend)
		 VALUES (?, ?, ?, ?, ?)`,
		report.Filename, report.RowCount, report.ValidRows, report.Anchor, report.AverageMonthlySpend)
	if err != nil {
		return Report{}, fmt.Errorf("insert report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Report{}, fmt.Errorf("report id: %w", err)
	}

	return r.GetReport(ctx, id)
}

// GetReport fetches one report by id.
func (r *SQLiteRepository) GetReport(ctx context.Context, id int64) (Report, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, filename, row_count, valid_rows, anchor, average_monthly_spend, created_at, digested_at
		 FROM reports WHERE id = ?`, id)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, ErrReportNotFound
	}
	if err != nil {
		return Report{}, fmt.Errorf("get report %d: %w", id, err)
	}
	return report, nil
}

// ListReports returns the most recent reports, newest first.
func (r *SQLiteRepository) ListReports(ctx context.Context, limit int) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, row_count, valid_rows, anchor, average_monthly_spend, created_at, digested_at
		 FROM reports ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// MarkDigested stamps the report as processed by the worker.
func (r *SQLiteRepository) MarkDigested(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reports SET digested_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark report %d digested: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark report %d digested: %w", id, err)
	}
	if affected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// SaveAdvice stores the suggestions generated for a report.
func (r *SQLiteRepository) SaveAdvice(ctx context.Context, reportID int64, suggestions []advice.Advice) error {
	for _, s := range suggestions {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO advice (report_id, suggestion, estimate) VALUES (?, ?, ?)`,
			reportID, s.Advice, s.Estimate)
		if err != nil {
			return fmt.Errorf("insert advice for report %d: %w", reportID, err)
		}
	}
	return nil
}

// ListAdvice returns the stored suggestions for a report, oldest first.
func (r *SQLiteRepository) ListAdvice(ctx context.Context, reportID int64) ([]advice.Advice, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT suggestion, estimate FROM advice WHERE report_id = ? ORDER BY id`, reportID)
	if err != nil {
		return nil, fmt.Errorf("list advice for report %d: %w", reportID, err)
	}
	defer rows.Close()

	var suggestions []advice.Advice
	for rows.Next() {
		var s advice.Advice
		if err := rows.Scan(&s.Advice, &s.Estimate); err != nil {
			return nil, fmt.Errorf("scan advice: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list advice for report %d: %w", reportID, err)
	}
	return suggestions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (Report, error) {
	var (
		report   Report
		digested sql.NullTime
	)
	err := s.Scan(&report.ID, &report.Filename, &report.RowCount, &report.ValidRows,
		&report.Anchor, &report.AverageMonthlySpend, &report.CreatedAt, &digested)
	if err != nil {
		return Report{}, err
	}
	if digested.Valid {
		t := digested.Time
		report.DigestedAt = &t
	}
	return report, nil
}
