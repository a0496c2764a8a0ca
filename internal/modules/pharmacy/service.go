package pharmacy

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/imagestore"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

// Service defines pharmacy and pharmacy image business logic.
type Service interface {
	// Pharmacy operations
	ListPharmacies(ctx context.Context, skip, limit int) ([]*Pharmacy, error)
	GetPharmacy(ctx context.Context, id int64) (*Pharmacy, error)
	CreatePharmacy(ctx context.Context, req CreatePharmacyRequest) (*Pharmacy, error)
	UpdatePharmacy(ctx context.Context, id int64, patch PharmacyPatch) (*Pharmacy, error)
	DeletePharmacy(ctx context.Context, id int64) error

	// Image operations
	ListImages(ctx context.Context, skip, limit int) ([]*Image, error)
	GetImage(ctx context.Context, name string) (*Image, error)
	CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error)
	UpdateImage(ctx context.Context, name string, patch ImagePatch) (*Image, error)
	DeleteImage(ctx context.Context, name string) error
}

// CreatePharmacyRequest holds data for registering a pharmacy.
type CreatePharmacyRequest struct {
	Name    string          `json:"name"`
	Address string          `json:"address"`
	Lat     decimal.Decimal `json:"lat"`
	Lng     decimal.Decimal `json:"lng"`
	Contact string          `json:"contact"`
	Owner   *int64          `json:"owner"`
}

// CreateImageRequest holds an uploaded picture for a pharmacy.
type CreateImageRequest struct {
	PharmacyID int64
	File       []byte
}

type service struct {
	pharmacies Repository
	images     ImageRepository
	files      ImageStore
	tx         database.Transactor
	check      integrity.Checker
}

// NewService creates a new pharmacy service.
func NewService(pharmacies Repository, images ImageRepository, files ImageStore, tx database.Transactor, check integrity.Checker) Service {
	return &service{
		pharmacies: pharmacies,
		images:     images,
		files:      files,
		tx:         tx,
		check:      check,
	}
}

func (s *service) ListPharmacies(ctx context.Context, skip, limit int) ([]*Pharmacy, error) {
	out, err := s.pharmacies.ListPharmacies(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, out...); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) GetPharmacy(ctx context.Context, id int64) (*Pharmacy, error) {
	p, err := s.pharmacies.GetPharmacyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachImages(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) CreatePharmacy(ctx context.Context, req CreatePharmacyRequest) (*Pharmacy, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Invalid("name is required")
	}
	if err := validateCoords(&req.Lat, &req.Lng); err != nil {
		return nil, err
	}
	p := &Pharmacy{
		Name:    req.Name,
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Contact: req.Contact,
		Owner:   req.Owner,
		Images:  []*Image{},
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if p.Owner != nil {
			if err := s.check.EnsureExists(ctx, integrity.User, *p.Owner); err != nil {
				return err
			}
		}
		return s.pharmacies.CreatePharmacy(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdatePharmacy(ctx context.Context, id int64, patch PharmacyPatch) (*Pharmacy, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var out *Pharmacy
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.pharmacies.GetPharmacyByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			if patch.Owner != nil {
				if err := s.check.EnsureExists(ctx, integrity.User, *patch.Owner); err != nil {
					return err
				}
			}
			patch.Apply(p)
			if err := s.pharmacies.UpdatePharmacy(ctx, id, p); err != nil {
				return err
			}
		}
		out = p
		return s.attachImages(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeletePharmacy(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.pharmacies.GetPharmacyByID(ctx, id); err != nil {
			return err
		}
		if err := s.check.EnsureDeletable(ctx, integrity.Pharmacy, id); err != nil {
			return err
		}
		return s.pharmacies.DeletePharmacy(ctx, id)
	})
}

func (s *service) ListImages(ctx context.Context, skip, limit int) ([]*Image, error) {
	return s.images.ListImages(ctx, skip, limit)
}

func (s *service) GetImage(ctx context.Context, name string) (*Image, error) {
	return s.images.GetImage(ctx, name)
}

func (s *service) CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error) {
	if len(req.File) == 0 {
		return nil, apperr.Invalid("file is required")
	}
	img := &Image{PharmacyID: req.PharmacyID}
	var saved string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.check.EnsureExists(ctx, integrity.Pharmacy, req.PharmacyID); err != nil {
			return err
		}
		name, err := s.files.Save(req.File, ImageFolder)
		if err != nil {
			return err
		}
		saved = name
		img.Name = name
		return s.images.CreateImage(ctx, img)
	})
	if err != nil {
		imagestore.Discard(ctx, s.files, saved, ImageFolder)
		return nil, err
	}
	return img, nil
}

func (s *service) UpdateImage(ctx context.Context, name string, patch ImagePatch) (*Image, error) {
	var (
		out   *Image
		saved string
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		img, err := s.images.GetImage(ctx, name)
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = img
			return nil
		}
		if patch.PharmacyID != nil {
			if err := s.check.EnsureExists(ctx, integrity.Pharmacy, *patch.PharmacyID); err != nil {
				return err
			}
			img.PharmacyID = *patch.PharmacyID
		}
		if patch.File != nil {
			if saved, err = s.files.Save(patch.File, ImageFolder); err != nil {
				return err
			}
			img.Name = saved
		}
		if err := s.images.UpdateImage(ctx, name, img); err != nil {
			return err
		}
		if saved != "" {
			if err := imagestore.Drop(ctx, s.files, name, ImageFolder); err != nil {
				return err
			}
		}
		out = img
		return nil
	})
	if err != nil {
		imagestore.Discard(ctx, s.files, saved, ImageFolder)
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteImage(ctx context.Context, name string) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.images.GetImage(ctx, name); err != nil {
			return err
		}
		if err := s.images.DeleteImage(ctx, name); err != nil {
			return err
		}
		return imagestore.Drop(ctx, s.files, name, ImageFolder)
	})
}

func (s *service) attachImages(ctx context.Context, pharmacies ...*Pharmacy) error {
	if len(pharmacies) == 0 {
		return nil
	}
	ids := make([]int64, len(pharmacies))
	for i, p := range pharmacies {
		ids[i] = p.ID
	}
	byPharmacy, err := s.images.ListImagesByPharmacies(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range pharmacies {
		p.Images = byPharmacy[p.ID]
		if p.Images == nil {
			p.Images = []*Image{}
		}
	}
	return nil
}
