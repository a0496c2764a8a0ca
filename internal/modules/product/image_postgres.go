package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

type imagePostgres struct{ db *sqlx.DB }

// NewImagePostgresRepository creates a new PostgreSQL product image repository.
func NewImagePostgresRepository(db *sqlx.DB) ImageRepository { return &imagePostgres{db: db} }

func (r *imagePostgres) ListImages(ctx context.Context, skip, limit int) ([]*Image, error) {
	out := []*Image{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT name, product_id, created_at
		FROM product_image
		ORDER BY created_at, name
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", database.Translate(err))
	}
	return out, nil
}

func (r *imagePostgres) GetImage(ctx context.Context, name string) (*Image, error) {
	img := &Image{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img,
		`SELECT name, product_id, created_at FROM product_image WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("product image %s: %w", name, database.Translate(err))
	}
	return img, nil
}

func (r *imagePostgres) CreateImage(ctx context.Context, img *Image) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img, `
		INSERT INTO product_image (name, product_id)
		VALUES ($1, $2)
		RETURNING name, product_id, created_at`, img.Name, img.ProductID)
	if err != nil {
		return fmt.Errorf("create product image: %w", database.Translate(err))
	}
	return nil
}

func (r *imagePostgres) UpdateImage(ctx context.Context, name string, img *Image) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img, `
		UPDATE product_image
		SET name = $1, product_id = $2
		WHERE name = $3
		RETURNING name, product_id, created_at`, img.Name, img.ProductID, name)
	if err != nil {
		return fmt.Errorf("update product image %s: %w", name, database.Translate(err))
	}
	return nil
}

func (r *imagePostgres) DeleteImage(ctx context.Context, name string) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM product_image WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete product image %s: %w", name, database.Translate(err))
	}
	return database.MustAffect(res, "product image "+name)
}
