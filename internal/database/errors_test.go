package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

type result int64

func (r result) LastInsertId() (int64, error) { return 0, errors.New("unsupported") }
func (r result) RowsAffected() (int64, error) { return int64(r), nil }

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"no rows", sql.ErrNoRows, apperr.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("get: %w", sql.ErrNoRows), apperr.ErrNotFound},
		{"unique", &pq.Error{Code: "23505", Message: `duplicate key value violates unique constraint "inventory_pkey"`}, apperr.ErrConflict},
		{"fk on delete", &pq.Error{Code: "23503", Message: `update or delete on table "pharmacy" violates foreign key constraint`}, apperr.ErrConflict},
		{"fk on insert", &pq.Error{Code: "23503", Message: `insert or update on table "inventory" violates foreign key constraint`}, apperr.ErrNotFound},
		{"too long", &pq.Error{Code: "22001", Message: "value too long for type character varying(25)"}, apperr.ErrInvalidInput},
		{"out of range", &pq.Error{Code: "22003", Message: "integer out of range"}, apperr.ErrInvalidInput},
		{"other driver error", &pq.Error{Code: "08006", Message: "connection failure"}, apperr.ErrIOFailure},
		{"plain error", errors.New("broken pipe"), apperr.ErrIOFailure},
		{"canceled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Translate(tt.err), tt.kind)
		})
	}
	assert.NoError(t, Translate(nil))
}

func TestMustAffect(t *testing.T) {
	assert.NoError(t, MustAffect(result(1), "pharmacy 1"))

	err := MustAffect(result(0), "pharmacy 1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "pharmacy 1")
}
