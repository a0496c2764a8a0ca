package product

import "context"

// Repository defines product data storage.
type Repository interface {
	ListProducts(ctx context.Context, skip, limit int) ([]*Product, error)
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, id int64, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CategoryRepository defines category data storage.
type CategoryRepository interface {
	ListCategories(ctx context.Context, skip, limit int) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, id int64, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

// LinkRepository defines product_category data storage.
type LinkRepository interface {
	ListLinks(ctx context.Context, skip, limit int) ([]*Link, error)
	GetLink(ctx context.Context, productID, categoryID int64) (*Link, error)
	CreateLink(ctx context.Context, l *Link) error
	// UpdateLink rewrites the row keyed by (productID, categoryID) to l's key.
	UpdateLink(ctx context.Context, productID, categoryID int64, l *Link) error
	DeleteLink(ctx context.Context, productID, categoryID int64) error
}

// ImageRepository defines product image data storage.
type ImageRepository interface {
	ListImages(ctx context.Context, skip, limit int) ([]*Image, error)
	GetImage(ctx context.Context, name string) (*Image, error)
	CreateImage(ctx context.Context, img *Image) error
	UpdateImage(ctx context.Context, name string, img *Image) error
	DeleteImage(ctx context.Context, name string) error
}

// ImageStore is the part of the image store the service needs.
type ImageStore interface {
	Save(raw []byte, folder string) (string, error)
	Remove(name, folder string) error
}
