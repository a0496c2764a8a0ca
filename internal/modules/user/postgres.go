package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

const userColumns = `user_id, name, username, password, email, "type", created_at`

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListUsers(ctx context.Context, skip, limit int) ([]*User, error) {
	users := []*User{}
	query := `
		SELECT ` + userColumns + `
		FROM "user"
		ORDER BY created_at, user_id
		OFFSET $1 LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &users, query, skip, limit); err != nil {
		return nil, fmt.Errorf("list users: %w", database.Translate(err))
	}
	return users, nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user := &User{}
	query := `SELECT ` + userColumns + ` FROM "user" WHERE user_id = $1`
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), user, query, id); err != nil {
		return nil, fmt.Errorf("user %d: %w", id, database.Translate(err))
	}
	return user, nil
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO "user" (name, username, password, email, "type")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), user, query,
		user.Name, user.Username, user.Password, user.Email, user.Type)
	if err != nil {
		return fmt.Errorf("create user: %w", database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) UpdateUser(ctx context.Context, id int64, user *User) error {
	query := `
		UPDATE "user"
		SET name = $1, username = $2, password = $3, email = $4, "type" = $5
		WHERE user_id = $6
		RETURNING ` + userColumns
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), user, query,
		user.Name, user.Username, user.Password, user.Email, user.Type, id)
	if err != nil {
		return fmt.Errorf("update user %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM "user" WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("user %d", id))
}
