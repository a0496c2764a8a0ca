package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	ListUserTypes(ctx context.Context, skip, limit int) ([]*UserType, error)
	GetUserType(ctx context.Context, id int64) (*UserType, error)
	CreateUserType(ctx context.Context, req CreateUserTypeRequest) (*UserType, error)
	UpdateUserType(ctx context.Context, id int64, patch UserTypePatch) (*UserType, error)
	DeleteUserType(ctx context.Context, id int64) error

	ListUsers(ctx context.Context, skip, limit int) ([]*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CreateUserTypeRequest holds data for creating a user type.
type CreateUserTypeRequest struct {
	UserType string `json:"user_type"`
}

// CreateUserRequest holds data for registering a user. Type is optional.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Type     *int64 `json:"type"`
}
