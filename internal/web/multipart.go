package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// ParseMultipart limits the body to maxBytes and parses it as a multipart
// form held in memory.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Invalid("upload exceeds %d bytes", maxBytes)
		}
		return apperr.Invalid("parse form: %v", err)
	}
	return nil
}

// FormFile returns the bytes of the uploaded file field, or nil when the
// field is absent.
func FormFile(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Invalid("read %s: %v", field, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, apperr.Invalid("read %s: %v", field, err)
	}
	if len(raw) == 0 {
		return nil, apperr.Invalid("%s is empty", field)
	}
	return raw, nil
}

// FormString returns the value of field, or nil when it was not sent.
func FormString(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vs, ok := r.MultipartForm.Value[field]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}

// FormInt64 parses field as an integer, or returns nil when it was not sent.
func FormInt64(r *http.Request, field string) (*int64, error) {
	s := FormString(r, field)
	if s == nil {
		return nil, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, apperr.Invalid("%s must be an integer, got %q", field, *s)
	}
	return &v, nil
}
