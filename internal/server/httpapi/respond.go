package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avolkov/fittrack/internal/errs"
)

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps sentinel errors onto HTTP status codes. Anything
// unrecognized becomes a 500 with a generic body so that internal detail
// never leaks to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeError(w, http.StatusBadRequest, stripSentinel(err, errs.ErrValidation))
	case errors.Is(err, errs.ErrAlreadyExists):
		msg := stripSentinel(err, errs.ErrAlreadyExists)
		// bare sentinel already reads "already exists"
		if msg != errs.ErrAlreadyExists.Error() {
			msg += " already exists"
		}
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, stripSentinel(err, errs.ErrUnauthorized))
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many login attempts, try again later")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// stripSentinel turns "validation: weight must be positive" into the
// human-readable tail; a bare sentinel falls back to its own text.
func stripSentinel(err error, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// decodeJSON decodes the request body into dst, translating type mismatches
// into caller-readable validation messages.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return fmt.Errorf("%w: field %q must be of type %s", errs.ErrValidation, typeErr.Field, typeErr.Type)
		}
		return fmt.Errorf("%w: invalid JSON body", errs.ErrValidation)
	}
	return nil
}

// Accepted input timestamp layouts, tried in order. All are normalized to UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses a caller-supplied timestamp and normalizes it to UTC.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be an ISO-8601 timestamp", errs.ErrValidation)
}

// formatDate renders timestamps in the single canonical output format.
func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
