package inventory

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Inventory is a product stocked by a pharmacy at a price. The
// (product_id, pharmacy_id) pair is the key.
type Inventory struct {
	ProductID  int64           `db:"product_id" json:"product_id"`
	PharmacyID int64           `db:"pharmacy_id" json:"pharmacy_id"`
	Stock      int             `db:"stock" json:"stock"`
	Price      decimal.Decimal `db:"price" json:"price"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

func (i *Inventory) validate() error {
	if i.Stock < 0 {
		return apperr.Invalid("stock must not be negative")
	}
	if i.Stock > math.MaxInt32 {
		return apperr.Invalid("stock must be at most %d", math.MaxInt32)
	}
	if i.Price.IsNegative() {
		return apperr.Invalid("price must not be negative")
	}
	return nil
}

// Patch is a partial inventory update. Changing ProductID or PharmacyID
// moves the row to a new key.
type Patch struct {
	ProductID  *int64           `json:"product_id"`
	PharmacyID *int64           `json:"pharmacy_id"`
	Stock      *int             `json:"stock"`
	Price      *decimal.Decimal `json:"price"`
}

func (p Patch) Empty() bool {
	return p.ProductID == nil && p.PharmacyID == nil && p.Stock == nil && p.Price == nil
}

func (p Patch) Apply(i *Inventory) {
	if p.ProductID != nil {
		i.ProductID = *p.ProductID
	}
	if p.PharmacyID != nil {
		i.PharmacyID = *p.PharmacyID
	}
	if p.Stock != nil {
		i.Stock = *p.Stock
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
}
