package advertisement

import "context"

// Repository defines advertisement data storage.
type Repository interface {
	List(ctx context.Context, skip, limit int) ([]*Advertisement, error)
	Get(ctx context.Context, id int64) (*Advertisement, error)
	Create(ctx context.Context, a *Advertisement) error
	Update(ctx context.Context, id int64, a *Advertisement) error
	Delete(ctx context.Context, id int64) error
}

// ImageStore is the part of the image store the service needs.
type ImageStore interface {
	Save(raw []byte, folder string) (string, error)
	Remove(name, folder string) error
}
