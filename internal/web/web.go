// Package web holds the request decoding and response helpers shared by the
// module handlers.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Respond writes body as JSON with status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// StatusOf maps an error kind onto its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidImage), errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as {"error": msg}. Server errors are logged with the
// request logger and answered with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = http.StatusText(status)
	}
	Respond(w, status, map[string]string{"error": msg})
}

// DecodeJSON reads the request body into dst. Unknown fields are rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Invalid("decode body: %v", err)
	}
	return nil
}

// Int64Param parses the chi URL parameter name.
func Int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.Invalid("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// Page reads skip and limit from the query string. limit defaults to def
// and is capped at max.
func Page(r *http.Request, def, max int) (skip, limit int, err error) {
	q := r.URL.Query()
	limit = def
	if raw := q.Get("skip"); raw != "" {
		if skip, err = strconv.Atoi(raw); err != nil || skip < 0 {
			return 0, 0, apperr.Invalid("skip must be a non-negative integer")
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return 0, 0, apperr.Invalid("limit must be a non-negative integer")
		}
	}
	if max > 0 && limit > max {
		limit = max
	}
	return skip, limit, nil
}

// Paging holds the list defaults handed to Page.
type Paging struct {
	Default int
	Max     int
}

// Parse is Page with p's defaults.
func (p Paging) Parse(r *http.Request) (skip, limit int, err error) {
	return Page(r, p.Default, p.Max)
}
