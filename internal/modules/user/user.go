package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// User represents an account. Password holds the bcrypt hash and is never
// serialized.
// @Description User information
// @Description with user_id, name, username, email, type, user_type and created_at
type User struct {
	ID        int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Username  string    `db:"username" json:"username"`
	Password  string    `db:"password" json:"-"`
	Email     string    `db:"email" json:"email"`
	Type      *int64    `db:"type" json:"type"`
	UserType  *UserType `db:"-" json:"user_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserPatch carries the fields of a partial user update; nil means unchanged.
type UserPatch struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Type     *int64  `json:"type"`
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Username == nil && p.Password == nil && p.Email == nil && p.Type == nil
}

// Apply copies the set fields onto u. Password must already be hashed.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Type != nil {
		u.Type = p.Type
	}
}

func (p UserPatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperr.Invalid("name must not be empty")
	}
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return apperr.Invalid("username must not be empty")
	}
	if p.Password != nil && *p.Password == "" {
		return apperr.Invalid("password must not be empty")
	}
	if p.Email != nil {
		return validateEmail(*p.Email)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperr.Invalid("email %q is not a valid address", email)
	}
	return nil
}
