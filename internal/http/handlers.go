package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"insight/internal/advice"
	"insight/internal/core"
	"insight/internal/ingest"
	"insight/internal/log"
	"insight/internal/services"
)

// adviceResponse is the body of a successful POST /advice.
type adviceResponse struct {
	MonthlySpending map[core.Category]float64 `json:"monthlySpending"`
	Advice          []advice.Advice           `json:"advice"`
}

// handleUpload parses the statement and returns the full analysis.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.uploadsTotal.Add(1)

	records, filename, ok := s.readStatement(w, r)
	if !ok {
		return
	}

	anchor, err := resolveAnchor(r, s.anchor)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	income, err := parseIncome(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	report, err := s.reports.Analyze(r.Context(), services.ReportInput{
		Filename:      filename,
		Records:       records,
		Anchor:        anchor,
		MonthlyIncome: income,
	})
	if errors.Is(err, core.ErrInvalidIncome) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Upload analysis failed",
			log.FieldOperation, log.OpUpload,
			log.FieldFilename, filename,
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to analyze statement")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleAdvice summarizes the month before the anchor and returns the
// advisor's suggestions for it.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.advice == nil {
		writeError(w, http.StatusServiceUnavailable, "advice is not configured")
		return
	}
	s.metrics.adviceTotal.Add(1)

	records, filename, ok := s.readStatement(w, r)
	if !ok {
		return
	}

	anchor, err := resolveAnchor(r, s.anchor)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	income, err := parseIncome(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if income == nil {
		writeError(w, http.StatusUnprocessableEntity, "income is required")
		return
	}

	suggestions, spending, err := s.advice.Suggest(r.Context(), records, *income, anchor, 0)
	if errors.Is(err, services.ErrNoPriorMonthData) {
		writeError(w, http.StatusUnprocessableEntity, "insufficient data for the month before the anchor")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Advice generation failed",
			log.FieldOperation, log.OpAdvise,
			log.FieldFilename, filename,
			log.FieldError, err)
		writeError(w, http.StatusBadGateway, "failed to generate advice")
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{
		MonthlySpending: spending,
		Advice:          suggestions,
	})
}

// readStatement extracts and parses the uploaded CSV. On failure it has
// already written the response and returns ok=false.
func (s *Server) readStatement(w http.ResponseWriter, r *http.Request) ([]core.Record, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "statement too large")
			return nil, "", false
		}
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return nil, "", false
	}

	file, header, err := r.FormFile("csv")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing csv file")
		return nil, "", false
	}
	defer file.Close()

	records, err := ingest.ReadRecords(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unreadable csv: %v", err))
		return nil, "", false
	}

	return records, header.Filename, true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleMetrics exposes plain-text counters.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "uptime_seconds %d\n", int64(time.Since(s.metrics.startedAt).Seconds()))
	fmt.Fprintf(w, "requests_total %d\n", s.metrics.requestsTotal.Load())
	fmt.Fprintf(w, "uploads_total %d\n", s.metrics.uploadsTotal.Load())
	fmt.Fprintf(w, "advice_requests_total %d\n", s.metrics.adviceTotal.Load())
	fmt.Fprintf(w, "rate_limited_total %d\n", s.metrics.rateLimited.Load())
}
