package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

type service struct {
	users Repository
	types TypeRepository
	tx    database.Transactor
	check integrity.Checker
}

// NewService creates a new user service.
func NewService(users Repository, types TypeRepository, tx database.Transactor, check integrity.Checker) Service {
	return &service{users: users, types: types, tx: tx, check: check}
}

func (s *service) ListUserTypes(ctx context.Context, skip, limit int) ([]*UserType, error) {
	return s.types.ListTypes(ctx, skip, limit)
}

func (s *service) GetUserType(ctx context.Context, id int64) (*UserType, error) {
	return s.types.GetTypeByID(ctx, id)
}

func (s *service) CreateUserType(ctx context.Context, req CreateUserTypeRequest) (*UserType, error) {
	if err := validateTypeName(req.UserType); err != nil {
		return nil, err
	}
	t := &UserType{Name: req.UserType}
	if err := s.types.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) UpdateUserType(ctx context.Context, id int64, patch UserTypePatch) (*UserType, error) {
	if patch.Name != nil {
		if err := validateTypeName(*patch.Name); err != nil {
			return nil, err
		}
	}

	var out *UserType
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := s.types.GetTypeByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			patch.Apply(t)
			if err := s.types.UpdateType(ctx, id, t); err != nil {
				return err
			}
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteUserType(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.types.GetTypeByID(ctx, id); err != nil {
			return err
		}
		if err := s.check.EnsureDeletable(ctx, integrity.UserType, id); err != nil {
			return err
		}
		return s.types.DeleteType(ctx, id)
	})
}

func (s *service) ListUsers(ctx context.Context, skip, limit int) ([]*User, error) {
	users, err := s.users.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachTypes(ctx, users...); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachTypes(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if strings.TrimSpace(req.Username) == "" {
		return nil, apperr.Invalid("username is required")
	}
	if req.Password == "" {
		return nil, apperr.Invalid("password is required")
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	hashed, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     req.Name,
		Username: req.Username,
		Password: hashed,
		Email:    req.Email,
		Type:     req.Type,
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if u.Type != nil {
			if err := s.check.EnsureExists(ctx, integrity.UserType, *u.Type); err != nil {
				return err
			}
		}
		if err := s.users.CreateUser(ctx, u); err != nil {
			return err
		}
		return s.attachTypes(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}

	var out *User
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		u, err := s.users.GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			if patch.Type != nil {
				if err := s.check.EnsureExists(ctx, integrity.UserType, *patch.Type); err != nil {
					return err
				}
			}
			patch.Apply(u)
			if err := s.users.UpdateUser(ctx, id, u); err != nil {
				return err
			}
		}
		out = u
		return s.attachTypes(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, id); err != nil {
			return err
		}
		if err := s.check.EnsureDeletable(ctx, integrity.User, id); err != nil {
			return err
		}
		return s.users.DeleteUser(ctx, id)
	})
}

// attachTypes loads the user type of every user in one query.
func (s *service) attachTypes(ctx context.Context, users ...*User) error {
	var ids []int64
	for _, u := range users {
		if u.Type != nil {
			ids = append(ids, *u.Type)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	types, err := s.types.GetTypesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Type != nil {
			u.UserType = types[*u.Type]
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", apperr.Invalid("%v", err))
	}
	return string(hashed), nil
}
