package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

// Service defines inventory business logic.
type Service interface {
	ListInventories(ctx context.Context, skip, limit int) ([]*Inventory, error)
	GetInventory(ctx context.Context, productID, pharmacyID int64) (*Inventory, error)
	CreateInventory(ctx context.Context, req CreateInventoryRequest) (*Inventory, error)
	UpdateInventory(ctx context.Context, productID, pharmacyID int64, patch Patch) (*Inventory, error)
	DeleteInventory(ctx context.Context, productID, pharmacyID int64) error
}

// CreateInventoryRequest holds data for listing a product in a pharmacy.
type CreateInventoryRequest struct {
	ProductID  int64           `json:"product_id"`
	PharmacyID int64           `json:"pharmacy_id"`
	Stock      int             `json:"stock"`
	Price      decimal.Decimal `json:"price"`
}

type service struct {
	repo  Repository
	tx    database.Transactor
	check integrity.Checker
}

// NewService creates a new inventory service.
func NewService(repo Repository, tx database.Transactor, check integrity.Checker) Service {
	return &service{repo: repo, tx: tx, check: check}
}

func (s *service) ListInventories(ctx context.Context, skip, limit int) ([]*Inventory, error) {
	return s.repo.ListInventories(ctx, skip, limit)
}

func (s *service) GetInventory(ctx context.Context, productID, pharmacyID int64) (*Inventory, error) {
	return s.repo.GetInventory(ctx, productID, pharmacyID)
}

func (s *service) CreateInventory(ctx context.Context, req CreateInventoryRequest) (*Inventory, error) {
	inv := &Inventory{
		ProductID:  req.ProductID,
		PharmacyID: req.PharmacyID,
		Stock:      req.Stock,
		Price:      req.Price,
	}
	if err := inv.validate(); err != nil {
		return nil, err
	}
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.checkKey(ctx, inv, true, true); err != nil {
			return err
		}
		return s.repo.CreateInventory(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *service) UpdateInventory(ctx context.Context, productID, pharmacyID int64, patch Patch) (*Inventory, error) {
	var out *Inventory
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.repo.GetInventory(ctx, productID, pharmacyID)
		if err != nil {
			return err
		}
		if patch.Empty() {
			out = inv
			return nil
		}
		patch.Apply(inv)
		if err := inv.validate(); err != nil {
			return err
		}
		productMoved := inv.ProductID != productID
		pharmacyMoved := inv.PharmacyID != pharmacyID
		if productMoved || pharmacyMoved {
			if err := s.checkKey(ctx, inv, productMoved, pharmacyMoved); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateInventory(ctx, productID, pharmacyID, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) DeleteInventory(ctx context.Context, productID, pharmacyID int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.repo.DeleteInventory(ctx, productID, pharmacyID)
	})
}

func (s *service) checkKey(ctx context.Context, inv *Inventory, product, pharmacy bool) error {
	if product {
		if err := s.check.EnsureExists(ctx, integrity.Product, inv.ProductID); err != nil {
			return err
		}
	}
	if pharmacy {
		if err := s.check.EnsureExists(ctx, integrity.Pharmacy, inv.PharmacyID); err != nil {
			return err
		}
	}
	return s.check.EnsureNoCollision(ctx, integrity.Inventory, inv.ProductID, inv.PharmacyID)
}
