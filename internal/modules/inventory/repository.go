package inventory

import "context"

// Repository defines inventory data storage.
type Repository interface {
	ListInventories(ctx context.Context, skip, limit int) ([]*Inventory, error)
	GetInventory(ctx context.Context, productID, pharmacyID int64) (*Inventory, error)
	CreateInventory(ctx context.Context, inv *Inventory) error
	// UpdateInventory rewrites the row keyed by (productID, pharmacyID); the
	// key columns are taken from inv.
	UpdateInventory(ctx context.Context, productID, pharmacyID int64, inv *Inventory) error
	DeleteInventory(ctx context.Context, productID, pharmacyID int64) error
}
