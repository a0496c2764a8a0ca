package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

const productColumns = `product_id, name, code, description, created_at`

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListProducts(ctx context.Context, skip, limit int) ([]*Product, error) {
	products := []*Product{}
	query := `
		SELECT ` + productColumns + `
		FROM product
		ORDER BY created_at, product_id
		OFFSET $1 LIMIT $2
	`
	if err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &products, query, skip, limit); err != nil {
		return nil, fmt.Errorf("list products: %w", database.Translate(err))
	}
	return products, nil
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p := &Product{}
	query := `SELECT ` + productColumns + ` FROM product WHERE product_id = $1`
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p, query, id); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, database.Translate(err))
	}
	return p, nil
}

func (r *postgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO product (name, code, description)
		VALUES ($1, $2, $3)
		RETURNING ` + productColumns
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p, query, p.Name, p.Code, p.Description); err != nil {
		return fmt.Errorf("create product: %w", database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) UpdateProduct(ctx context.Context, id int64, p *Product) error {
	query := `
		UPDATE product
		SET name = $1, code = $2, description = $3
		WHERE product_id = $4
		RETURNING ` + productColumns
	if err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p, query, p.Name, p.Code, p.Description, id); err != nil {
		return fmt.Errorf("update product %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM product WHERE product_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("product %d", id))
}
