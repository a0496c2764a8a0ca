package product

import "time"

// Category groups products.
type Category struct {
	ID        int64     `db:"category_id" json:"category_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CategoryPatch struct {
	Name *string `json:"name"`
}

func (p CategoryPatch) Empty() bool { return p.Name == nil }

func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
}

// Link assigns a product to a category. The pair is the key.
type Link struct {
	ProductID  int64     `db:"product_id" json:"product_id"`
	CategoryID int64     `db:"category_id" json:"category_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// LinkPatch re-keys a link.
type LinkPatch struct {
	ProductID  *int64 `json:"product_id"`
	CategoryID *int64 `json:"category_id"`
}

func (p LinkPatch) Empty() bool { return p.ProductID == nil && p.CategoryID == nil }

func (p LinkPatch) Apply(l *Link) {
	if p.ProductID != nil {
		l.ProductID = *p.ProductID
	}
	if p.CategoryID != nil {
		l.CategoryID = *p.CategoryID
	}
}
