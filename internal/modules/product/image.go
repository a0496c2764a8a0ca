package product

import "time"

// ImageFolder is the image store folder for product pictures.
const ImageFolder = "products"

// Image is a stored picture of a product, keyed by its file name.
type Image struct {
	Name      string    `db:"name" json:"name"`
	ProductID int64     `db:"product_id" json:"product_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ImagePatch moves an image to another product, replaces its file, or both.
type ImagePatch struct {
	ProductID *int64
	File      []byte
}

func (p ImagePatch) Empty() bool { return p.ProductID == nil && p.File == nil }
