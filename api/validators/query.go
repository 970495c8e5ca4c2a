package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

const queryDateLayout = "2006-01-02"

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryDate reads a calendar date in YYYY-MM-DD form. A missing
// value returns the zero time without error.
func ParseQueryDate(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a date (YYYY-MM-DD)").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryWindow reads the start/end date pair used by reporting
// endpoints. Both bounds are required and must be ordered.
func ParseQueryWindow(r *http.Request) (time.Time, time.Time, error) {
	start, err := ParseQueryDate(r, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseQueryDate(r, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start and end query parameters are required")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end must not precede start")
	}
	return start, end, nil
}
