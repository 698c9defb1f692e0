package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// errInvalidIncome marks income form values that cannot feed the
// projection.
var errInvalidIncome = fmt.Errorf("invalid income")

// parseIncome reads the income form field. A missing field returns
// (nil, nil), anything present must be a finite positive number.
func parseIncome(r *http.Request) (*float64, error) {
	raw := strings.TrimSpace(r.FormValue("income"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil, fmt.Errorf("%w: %q", errInvalidIncome, raw)
	}
	return &v, nil
}

// resolveAnchor reads the optional anchor form field (YYYY-MM-DD),
// falling back to the supplied default.
func resolveAnchor(r *http.Request, fallback func() time.Time) (time.Time, error) {
	raw := strings.TrimSpace(r.FormValue("anchor"))
	if raw == "" {
		return fallback(), nil
	}
	anchor, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid anchor date %q", raw)
	}
	return anchor, nil
}

// extractClientIP considers proxy headers before the remote address.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
