package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

type typePostgresRepository struct {
	db *sqlx.DB
}

// NewTypePostgresRepository creates a new PostgreSQL user type repository.
func NewTypePostgresRepository(db *sqlx.DB) TypeRepository {
	return &typePostgresRepository{db: db}
}

func (r *typePostgresRepository) ListTypes(ctx context.Context, skip, limit int) ([]*UserType, error) {
	types := []*UserType{}
	query := `
		SELECT id, user_type, created_at
		FROM user_type
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &types, query, skip, limit); err != nil {
		return nil, fmt.Errorf("list user types: %w", database.Translate(err))
	}
	return types, nil
}

func (r *typePostgresRepository) GetTypeByID(ctx context.Context, id int64) (*UserType, error) {
	t := &UserType{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), t,
		`SELECT id, user_type, created_at FROM user_type WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("user type %d: %w", id, database.Translate(err))
	}
	return t, nil
}

func (r *typePostgresRepository) GetTypesByIDs(ctx context.Context, ids []int64) (map[int64]*UserType, error) {
	out := make(map[int64]*UserType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var types []*UserType
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &types,
		`SELECT id, user_type, created_at FROM user_type WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load user types: %w", database.Translate(err))
	}
	for _, t := range types {
		out[t.ID] = t
	}
	return out, nil
}

func (r *typePostgresRepository) CreateType(ctx context.Context, t *UserType) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), t,
		`INSERT INTO user_type (user_type) VALUES ($1) RETURNING id, user_type, created_at`, t.Name)
	if err != nil {
		return fmt.Errorf("create user type: %w", database.Translate(err))
	}
	return nil
}

func (r *typePostgresRepository) UpdateType(ctx context.Context, id int64, t *UserType) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), t,
		`UPDATE user_type SET user_type = $1 WHERE id = $2 RETURNING id, user_type, created_at`, t.Name, id)
	if err != nil {
		return fmt.Errorf("update user type %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *typePostgresRepository) DeleteType(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM user_type WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user type %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("user type %d", id))
}
