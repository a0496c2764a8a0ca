package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWrapKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		msg  string
	}{
		{"not found", NotFound("pharmacy %d", 4), ErrNotFound, "pharmacy 4: not found"},
		{"conflict", Conflict("inventory (%d, %d)", 1, 2), ErrConflict, "inventory (1, 2): conflict"},
		{"invalid", Invalid("name is required"), ErrInvalidInput, "name is required: invalid input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestKindsSurviveFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("delete user type: %w", Conflict("user_type 1 still referenced by user"))
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))
}
