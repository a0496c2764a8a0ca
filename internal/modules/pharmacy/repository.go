package pharmacy

import "context"

// Repository defines pharmacy data storage.
type Repository interface {
	ListPharmacies(ctx context.Context, skip, limit int) ([]*Pharmacy, error)
	GetPharmacyByID(ctx context.Context, id int64) (*Pharmacy, error)
	CreatePharmacy(ctx context.Context, p *Pharmacy) error
	UpdatePharmacy(ctx context.Context, id int64, p *Pharmacy) error
	DeletePharmacy(ctx context.Context, id int64) error
}

// ImageRepository defines pharmacy image data storage.
type ImageRepository interface {
	ListImages(ctx context.Context, skip, limit int) ([]*Image, error)
	// ListImagesByPharmacies groups the images of every pharmacy in ids.
	ListImagesByPharmacies(ctx context.Context, ids []int64) (map[int64][]*Image, error)
	GetImage(ctx context.Context, name string) (*Image, error)
	CreateImage(ctx context.Context, img *Image) error
	// UpdateImage rewrites the row stored under name; img.Name may differ.
	UpdateImage(ctx context.Context, name string, img *Image) error
	DeleteImage(ctx context.Context, name string) error
}

// ImageStore is the part of the image store the service needs.
type ImageStore interface {
	Save(raw []byte, folder string) (string, error)
	Remove(name, folder string) error
}
