package product

import (
	"strings"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Product represents a catalog product.
// @Description Product information
// @Description with product_id, name, code, description and created_at
type Product struct {
	ID          int64     `db:"product_id" json:"product_id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProductPatch is a partial product update.
type ProductPatch struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Code == nil && p.Description == nil
}

func (p ProductPatch) Apply(pr *Product) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Code != nil {
		pr.Code = *p.Code
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
}

func (p ProductPatch) validate() error {
	if p.Name != nil {
		if err := required("name", *p.Name, 60); err != nil {
			return err
		}
	}
	if p.Code != nil {
		if err := required("code", *p.Code, 12); err != nil {
			return err
		}
	}
	if p.Description != nil && len(*p.Description) > 200 {
		return apperr.Invalid("description must be at most 200 characters")
	}
	return nil
}

func required(field, v string, max int) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Invalid("%s is required", field)
	}
	if len(v) > max {
		return apperr.Invalid("%s must be at most %d characters", field, max)
	}
	return nil
}
