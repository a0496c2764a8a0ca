package advertisement

import (
	"context"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/imagestore"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

type Service interface {
	List(ctx context.Context, skip, limit int) ([]*Advertisement, error)
	Get(ctx context.Context, id int64) (*Advertisement, error)
	Create(ctx context.Context, req CreateRequest) (*Advertisement, error)
	Update(ctx context.Context, id int64, patch Patch) (*Advertisement, error)
	Delete(ctx context.Context, id int64) error
}

// CreateRequest holds a new advertisement and its banner upload.
type CreateRequest struct {
	Title       string
	Description string
	Owner       *int64
	File        []byte
}

type service struct {
	repo  Repository
	files ImageStore
	tx    database.Transactor
	check integrity.Checker
}

func NewService(repo Repository, files ImageStore, tx database.Transactor, check integrity.Checker) Service {
	return &service{repo: repo, files: files, tx: tx, check: check}
}

func (s *service) List(ctx context.Context, skip, limit int) ([]*Advertisement, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *service) Get(ctx context.Context, id int64) (*Advertisement, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Advertisement, error) {
	if err := (Patch{Title: &req.Title, Description: &req.Description}).validate(); err != nil {
		return nil, err
	}
	if len(req.File) == 0 {
		return nil, apperr.Invalid("file is required")
	}

	a := &Advertisement{Title: req.Title, Description: req.Description, Owner: req.Owner}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if a.Owner != nil {
			if err := s.check.EnsureExists(ctx, integrity.User, *a.Owner); err != nil {
				return err
			}
		}
		name, err := s.files.Save(req.File, ImageFolder)
		if err != nil {
			return err
		}
		a.Image = name
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		imagestore.Discard(ctx, s.files, a.Image, ImageFolder)
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, patch Patch) (*Advertisement, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var (
		out   *Advertisement
		saved string
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = a
			return nil
		}
		if patch.Owner != nil {
			if err := s.check.EnsureExists(ctx, integrity.User, *patch.Owner); err != nil {
				return err
			}
		}
		old := a.Image
		patch.Apply(a)
		if patch.File != nil {
			if saved, err = s.files.Save(patch.File, ImageFolder); err != nil {
				return err
			}
			a.Image = saved
		}
		if err := s.repo.Update(ctx, id, a); err != nil {
			return err
		}
		if saved != "" {
			if err := imagestore.Drop(ctx, s.files, old, ImageFolder); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		imagestore.Discard(ctx, s.files, saved, ImageFolder)
		return nil, err
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		return imagestore.Drop(ctx, s.files, a.Image, ImageFolder)
	})
}
