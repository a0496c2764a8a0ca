package advertisement

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

const columns = `advertisement_id, advertisement_title, advertisement_description, advertisement_image, owner, created_at`

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL advertisement repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, skip, limit int) ([]*Advertisement, error) {
	out := []*Advertisement{}
	query := `
		SELECT ` + columns + `
		FROM advertisement
		ORDER BY created_at, advertisement_id
		OFFSET $1 LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, query, skip, limit); err != nil {
		return nil, fmt.Errorf("list advertisements: %w", database.Translate(err))
	}
	return out, nil
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*Advertisement, error) {
	a := &Advertisement{}
	query := `SELECT ` + columns + ` FROM advertisement WHERE advertisement_id = $1`
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), a, query, id); err != nil {
		return nil, fmt.Errorf("advertisement %d: %w", id, database.Translate(err))
	}
	return a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *Advertisement) error {
	query := `
		INSERT INTO advertisement (advertisement_title, advertisement_description, advertisement_image, owner)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), a, query, a.Title, a.Description, a.Image, a.Owner)
	if err != nil {
		return fmt.Errorf("create advertisement: %w", database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, a *Advertisement) error {
	query := `
		UPDATE advertisement
		SET advertisement_title = $1, advertisement_description = $2, advertisement_image = $3, owner = $4
		WHERE advertisement_id = $5
		RETURNING ` + columns
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), a, query, a.Title, a.Description, a.Image, a.Owner, id)
	if err != nil {
		return fmt.Errorf("update advertisement %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM advertisement WHERE advertisement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete advertisement %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("advertisement %d", id))
}
