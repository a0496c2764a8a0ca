package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Translate maps driver errors onto apperr kinds. Context cancellation is
// passed through untouched.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%s: %w", pqErr.Message, apperr.ErrConflict)
		case "foreign_key_violation":
			// "update or delete on table ..." means a parent row is still
			// referenced; "insert or update on table ..." means the child
			// points at a row that does not exist.
			if strings.HasPrefix(pqErr.Message, "update or delete") {
				return fmt.Errorf("%s: %w", pqErr.Message, apperr.ErrConflict)
			}
			return fmt.Errorf("%s: %w", pqErr.Message, apperr.ErrNotFound)
		case "check_violation", "not_null_violation", "string_data_right_truncation", "numeric_value_out_of_range":
			return fmt.Errorf("%s: %w", pqErr.Message, apperr.ErrInvalidInput)
		}
	}
	return fmt.Errorf("%w: %w", apperr.ErrIOFailure, err)
}

// MustAffect converts a zero RowsAffected into apperr.ErrNotFound.
func MustAffect(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return Translate(err)
	}
	if n == 0 {
		return apperr.NotFound("%s", what)
	}
	return nil
}
