package product

import (
	"context"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/imagestore"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

// Service defines product catalog business logic.
type Service interface {
	// Product operations
	ListProducts(ctx context.Context, skip, limit int) ([]*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// Category operations
	ListCategories(ctx context.Context, skip, limit int) ([]*Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (*Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	// Product category operations
	ListLinks(ctx context.Context, skip, limit int) ([]*Link, error)
	GetLink(ctx context.Context, productID, categoryID int64) (*Link, error)
	CreateLink(ctx context.Context, req CreateLinkRequest) (*Link, error)
	UpdateLink(ctx context.Context, productID, categoryID int64, patch LinkPatch) (*Link, error)
	DeleteLink(ctx context.Context, productID, categoryID int64) error

	// Image operations
	ListImages(ctx context.Context, skip, limit int) ([]*Image, error)
	GetImage(ctx context.Context, name string) (*Image, error)
	CreateImage(ctx context.Context, req CreateImageRequest) (*Image, error)
	UpdateImage(ctx context.Context, name string, patch ImagePatch) (*Image, error)
	DeleteImage(ctx context.Context, name string) error
}

// CreateProductRequest holds data for adding a product to the catalog.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CreateCategoryRequest holds data for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CreateLinkRequest assigns a product to a category.
type CreateLinkRequest struct {
	ProductID  int64 `json:"product_id"`
	CategoryID int64 `json:"category_id"`
}

// CreateImageRequest holds an uploaded picture for a product.
type CreateImageRequest struct {
	ProductID int64
	File      []byte
}

type service struct {
	products   Repository
	categories CategoryRepository
	links      LinkRepository
	images     ImageRepository
	files      ImageStore
	tx         database.Transactor
	check      integrity.Checker
}

// NewService creates a new product service.
func NewService(
	products Repository,
	categories CategoryRepository,
	links LinkRepository,
	images ImageRepository,
	files ImageStore,
	tx database.Transactor,
	check integrity.Checker,
) Service {
	return &service{
		products:   products,
		categories: categories,
		links:      links,
		images:     images,
		files:      files,
		tx:         tx,
		check:      check,
	}
}

func (s *service) ListProducts(ctx context.Context, skip, limit int) ([]*Product, error) {
	return s.products.ListProducts(ctx, skip, limit)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.products.GetProductByID(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	patch := ProductPatch{Name: &req.Name, Code: &req.Code, Description: &req.Description}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	p := &Product{}
	patch.Apply(p)
	if err := s.products.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*Product, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var out *Product
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		p, err := s.products.GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			patch.Apply(p)
			if err := s.products.UpdateProduct(ctx, id, p); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.products.GetProductByID(ctx, id); err != nil {
			return err
		}
		if err := s.check.EnsureDeletable(ctx, integrity.Product, id); err != nil {
			return err
		}
		return s.products.DeleteProduct(ctx, id)
	})
}

func (s *service) ListCategories(ctx context.Context, skip, limit int) ([]*Category, error) {
	return s.categories.ListCategories(ctx, skip, limit)
}

func (s *service) GetCategory(ctx context.Context, id int64) (*Category, error) {
	return s.categories.GetCategoryByID(ctx, id)
}

func (s *service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if err := required("name", req.Name, 50); err != nil {
		return nil, err
	}
	c := &Category{Name: req.Name}
	if err := s.categories.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, patch CategoryPatch) (*Category, error) {
	if patch.Name != nil {
		if err := required("name", *patch.Name, 50); err != nil {
			return nil, err
		}
	}
	var out *Category
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.categories.GetCategoryByID(ctx, id)
		if err != nil {
			return err
		}
		if !patch.Empty() {
			patch.Apply(c)
			if err := s.categories.UpdateCategory(ctx, id, c); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.categories.GetCategoryByID(ctx, id); err != nil {
			return err
		}
		if err := s.check.EnsureDeletable(ctx, integrity.Category, id); err != nil {
			return err
		}
		return s.categories.DeleteCategory(ctx, id)
	})
}

func (s *service) ListLinks(ctx context.Context, skip, limit int) ([]*Link, error) {
	return s.links.ListLinks(ctx, skip, limit)
}

func (s *service) GetLink(ctx context.Context, productID, categoryID int64) (*Link, error) {
	return s.links.GetLink(ctx, productID, categoryID)
}

func (s *service) CreateLink(ctx context.Context, req CreateLinkRequest) (*Link, error) {
	l := &Link{ProductID: req.ProductID, CategoryID: req.CategoryID}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.checkLinkKey(ctx, l, true, true); err != nil {
			return err
		}
		return s.links.CreateLink(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) UpdateLink(ctx context.Context, productID, categoryID int64, patch LinkPatch) (*Link, error) {
	var out *Link
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		l, err := s.links.GetLink(ctx, productID, categoryID)
		if err != nil {
			return err
		}
		patch.Apply(l)
		productMoved := l.ProductID != productID
		categoryMoved := l.CategoryID != categoryID
		if productMoved || categoryMoved {
			if err := s.checkLinkKey(ctx, l, productMoved, categoryMoved); err != nil {
				return err
			}
			if err := s.links.UpdateLink(ctx, productID, categoryID, l); err != nil {
				return err
			}
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteLink(ctx context.Context, productID, categoryID int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.links.DeleteLink(ctx, productID, categoryID)
	})
}

// checkLinkKey verifies the parents that changed and that l's full key is free.
func (s *service) checkLinkKey(ctx context.Context, l *Link, product, category bool) error {
	if product {
		if err := s.check.EnsureExists(ctx, integrity.Product, l.ProductID); err != nil {
			return err
		}
	}
	if category {
		if err := s.check.EnsureExists(ctx, integrity.Category, l.CategoryID); err != nil {
			return err
		}
	}
	return s.check.EnsureNoCollision(ctx, integrity.ProductCategory, l.ProductID, l.CategoryID)
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
	img := &Image{ProductID: req.ProductID}
	var saved string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.check.EnsureExists(ctx, integrity.Product, req.ProductID); err != nil {
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
		if patch.ProductID != nil {
			if err := s.check.EnsureExists(ctx, integrity.Product, *patch.ProductID); err != nil {
				return err
			}
			img.ProductID = *patch.ProductID
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
		if err := s.images.DeleteImage(ctx, name); err != nil {
			return err
		}
		return imagestore.Drop(ctx, s.files, name, ImageFolder)
	})
}
