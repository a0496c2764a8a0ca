package user

import "context"

// Repository defines the interface for user data storage.
type Repository interface {
	ListUsers(ctx context.Context, skip, limit int) ([]*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, id int64, user *User) error
	DeleteUser(ctx context.Context, id int64) error
}

// TypeRepository defines the interface for user type data storage.
type TypeRepository interface {
	ListTypes(ctx context.Context, skip, limit int) ([]*UserType, error)
	GetTypeByID(ctx context.Context, id int64) (*UserType, error)
	// GetTypesByIDs returns the types found among ids, keyed by id.
	GetTypesByIDs(ctx context.Context, ids []int64) (map[int64]*UserType, error)
	CreateType(ctx context.Context, t *UserType) error
	UpdateType(ctx context.Context, id int64, t *UserType) error
	DeleteType(ctx context.Context, id int64) error
}
