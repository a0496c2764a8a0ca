package product

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

// ---- Category ----

type categoryPostgres struct{ db *sqlx.DB }

func NewCategoryPostgresRepository(db *sqlx.DB) CategoryRepository {
	return &categoryPostgres{db: db}
}

func (r *categoryPostgres) ListCategories(ctx context.Context, skip, limit int) ([]*Category, error) {
	out := []*Category{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT category_id, name, created_at
		FROM category
		ORDER BY created_at, category_id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", database.Translate(err))
	}
	return out, nil
}

func (r *categoryPostgres) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	c := &Category{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), c,
		`SELECT category_id, name, created_at FROM category WHERE category_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("category %d: %w", id, database.Translate(err))
	}
	return c, nil
}

func (r *categoryPostgres) CreateCategory(ctx context.Context, c *Category) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), c,
		`INSERT INTO category (name) VALUES ($1) RETURNING category_id, name, created_at`, c.Name)
	if err != nil {
		return fmt.Errorf("create category: %w", database.Translate(err))
	}
	return nil
}

func (r *categoryPostgres) UpdateCategory(ctx context.Context, id int64, c *Category) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), c,
		`UPDATE category SET name = $1 WHERE category_id = $2 RETURNING category_id, name, created_at`, c.Name, id)
	if err != nil {
		return fmt.Errorf("update category %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *categoryPostgres) DeleteCategory(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM category WHERE category_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("category %d", id))
}

// ---- Link ----

type linkPostgres struct{ db *sqlx.DB }

func NewLinkPostgresRepository(db *sqlx.DB) LinkRepository { return &linkPostgres{db: db} }

func (r *linkPostgres) ListLinks(ctx context.Context, skip, limit int) ([]*Link, error) {
	out := []*Link{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT product_id, category_id, created_at
		FROM product_category
		ORDER BY created_at, product_id, category_id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", database.Translate(err))
	}
	return out, nil
}

func (r *linkPostgres) GetLink(ctx context.Context, productID, categoryID int64) (*Link, error) {
	l := &Link{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), l, `
		SELECT product_id, category_id, created_at
		FROM product_category
		WHERE product_id = $1 AND category_id = $2`, productID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("product category (%d, %d): %w", productID, categoryID, database.Translate(err))
	}
	return l, nil
}

func (r *linkPostgres) CreateLink(ctx context.Context, l *Link) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), l, `
		INSERT INTO product_category (product_id, category_id)
		VALUES ($1, $2)
		RETURNING product_id, category_id, created_at`, l.ProductID, l.CategoryID)
	if err != nil {
		return fmt.Errorf("create product category: %w", database.Translate(err))
	}
	return nil
}

func (r *linkPostgres) UpdateLink(ctx context.Context, productID, categoryID int64, l *Link) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), l, `
		UPDATE product_category
		SET product_id = $1, category_id = $2
		WHERE product_id = $3 AND category_id = $4
		RETURNING product_id, category_id, created_at`, l.ProductID, l.CategoryID, productID, categoryID)
	if err != nil {
		return fmt.Errorf("update product category (%d, %d): %w", productID, categoryID, database.Translate(err))
	}
	return nil
}

func (r *linkPostgres) DeleteLink(ctx context.Context, productID, categoryID int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM product_category WHERE product_id = $1 AND category_id = $2`, productID, categoryID)
	if err != nil {
		return fmt.Errorf("delete product category (%d, %d): %w", productID, categoryID, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("product category (%d, %d)", productID, categoryID))
}
