// Package worker consumes report events and finalizes reports in the
// background.
package worker

import (
	"context"
	"errors"
	"fmt"

	"insight/internal/amqp"
	"insight/internal/log"
	"insight/internal/storage"
)

// ReportStore is the slice of storage the digest worker needs.
type ReportStore interface {
	GetReport(ctx context.Context, id int64) (storage.Report, error)
	MarkDigested(ctx context.Context, id int64) error
}

// DigestWorker marks freshly announced reports as digested. It is the
// place where slow post-processing hangs off the upload path.
type DigestWorker struct {
	store  ReportStore
	logger *log.Logger
}

func NewDigestWorker(store ReportStore, logger *log.Logger) *DigestWorker {
	return &DigestWorker{
		store:  store,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleReportCreated processes a single report created message.
func (w *DigestWorker) HandleReportCreated(ctx context.Context, msg *amqp.ReportCreatedMessage) error {
	report, err := w.store.GetReport(ctx, msg.ReportID)
	if errors.Is(err, storage.ErrReportNotFound) {
		// The report was deleted before we got to it. Nothing to do,
		// and requeueing would loop forever.
		w.logger.WarnContext(ctx, "Report gone before digest",
			log.FieldOperation, log.OpConsume,
			log.FieldReportID, msg.ReportID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get report %d: %w", msg.ReportID, err)
	}

	if report.DigestedAt != nil {
		w.logger.DebugContext(ctx, "Report already digested",
			log.FieldOperation, log.OpConsume,
			log.FieldReportID, report.ID)
		return nil
	}

	if err := w.store.MarkDigested(ctx, report.ID); err != nil {
		return fmt.Errorf("mark report %d digested: %w", report.ID, err)
	}

	w.logger.InfoContext(ctx, "Report digested",
		log.FieldOperation, log.OpConsume,
		log.FieldReportID, report.ID,
		log.FieldFilename, report.Filename)

	return nil
}
