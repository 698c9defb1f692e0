package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"insight/internal/amqp"
	"insight/internal/log"
	"insight/internal/storage"
)

type fakeStore struct {
	reports  map[int64]storage.Report
	digested []int64
	getErr   error
	markErr  error
}

func (f *fakeStore) GetReport(_ context.Context, id int64) (storage.Report, error) {
	if f.getErr != nil {
		return storage.Report{}, f.getErr
	}
	report, ok := f.reports[id]
	if !ok {
		return storage.Report{}, storage.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeStore) MarkDigested(_ context.Context, id int64) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.digested = append(f.digested, id)
	return nil
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestHandleReportCreated(t *testing.T) {
	store := &fakeStore{reports: map[int64]storage.Report{
		5: {ID: 5, Filename: "statement.csv"},
	}}
	w := NewDigestWorker(store, testLogger())

	err := w.HandleReportCreated(context.Background(), amqp.NewReportCreatedMessage(5))
	if err != nil {
		t.Fatalf("HandleReportCreated: %v", err)
	}
	if len(store.digested) != 1 || store.digested[0] != 5 {
		t.Fatalf("digested = %v, want [5]", store.digested)
	}
}

func TestHandleReportCreatedMissingReport(t *testing.T) {
	store := &fakeStore{reports: map[int64]storage.Report{}}
	w := NewDigestWorker(store, testLogger())

	// A deleted report is not an error, requeueing would never succeed.
	err := w.HandleReportCreated(context.Background(), amqp.NewReportCreatedMessage(99))
	if err != nil {
		t.Fatalf("HandleReportCreated: %v", err)
	}
	if len(store.digested) != 0 {
		t.Fatalf("digested = %v, want none", store.digested)
	}
}

func TestHandleReportCreatedAlreadyDigested(t *testing.T) {
	now := time.Now()
	store := &fakeStore{reports: map[int64]storage.Report{
		5: {ID: 5, DigestedAt: &now},
	}}
	w := NewDigestWorker(store, testLogger())

	if err := w.HandleReportCreated(context.Background(), amqp.NewReportCreatedMessage(5)); err != nil {
		t.Fatalf("HandleReportCreated: %v", err)
	}
	if len(store.digested) != 0 {
		t.Fatalf("digested = %v, want none", store.digested)
	}
}

func TestHandleReportCreatedStorageError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("db locked")}
	w := NewDigestWorker(store, testLogger())

	if err := w.HandleReportCreated(context.Background(), amqp.NewReportCreatedMessage(5)); err == nil {
		t.Fatal("expected error so the message gets requeued")
	}
}
