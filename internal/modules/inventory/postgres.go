package inventory

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

const columns = `product_id, pharmacy_id, stock, price, created_at`

type postgresRepository struct{ db *sqlx.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepository{db: db} }

func (r *postgresRepository) ListInventories(ctx context.Context, skip, limit int) ([]*Inventory, error) {
	out := []*Inventory{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT `+columns+`
		FROM inventory
		ORDER BY created_at, product_id, pharmacy_id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", database.Translate(err))
	}
	return out, nil
}

func (r *postgresRepository) GetInventory(ctx context.Context, productID, pharmacyID int64) (*Inventory, error) {
	inv := &Inventory{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), inv, `
		SELECT `+columns+`
		FROM inventory
		WHERE product_id = $1 AND pharmacy_id = $2`, productID, pharmacyID)
	if err != nil {
		return nil, fmt.Errorf("inventory (%d, %d): %w", productID, pharmacyID, database.Translate(err))
	}
	return inv, nil
}

func (r *postgresRepository) CreateInventory(ctx context.Context, inv *Inventory) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), inv, `
		INSERT INTO inventory (product_id, pharmacy_id, stock, price)
		VALUES ($1, $2, $3, $4)
		RETURNING `+columns,
		inv.ProductID, inv.PharmacyID, inv.Stock, inv.Price)
	if err != nil {
		return fmt.Errorf("create inventory: %w", database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) UpdateInventory(ctx context.Context, productID, pharmacyID int64, inv *Inventory) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), inv, `
		UPDATE inventory
		SET product_id = $1, pharmacy_id = $2, stock = $3, price = $4
		WHERE product_id = $5 AND pharmacy_id = $6
		RETURNING `+columns,
		inv.ProductID, inv.PharmacyID, inv.Stock, inv.Price, productID, pharmacyID)
	if err != nil {
		return fmt.Errorf("update inventory (%d, %d): %w", productID, pharmacyID, database.Translate(err))
	}
	return nil
}

func (r *postgresRepository) DeleteInventory(ctx context.Context, productID, pharmacyID int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM inventory WHERE product_id = $1 AND pharmacy_id = $2`, productID, pharmacyID)
	if err != nil {
		return fmt.Errorf("delete inventory (%d, %d): %w", productID, pharmacyID, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("inventory (%d, %d)", productID, pharmacyID))
}
