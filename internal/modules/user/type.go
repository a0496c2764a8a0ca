package user

import (
	"strings"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// UserType is the role label a user is assigned to.
// @Description User type information
// @Description with id, user_type and created_at
type UserType struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"user_type" json:"user_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserTypePatch is a partial user type update.
type UserTypePatch struct {
	Name *string `json:"user_type"`
}

func (p UserTypePatch) Empty() bool { return p.Name == nil }

func (p UserTypePatch) Apply(t *UserType) {
	if p.Name != nil {
		t.Name = *p.Name
	}
}

func validateTypeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Invalid("user_type must not be empty")
	}
	if len(name) > 32 {
		return apperr.Invalid("user_type must be at most 32 characters")
	}
	return nil
}
