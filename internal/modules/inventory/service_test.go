package inventory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
	"github.com/pharmaguide/pharmaguide-backend/internal/testutil"
)

type memRepo struct {
	rows   map[[2]int64]Inventory
	writes int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[[2]int64]Inventory{}} }

func (m *memRepo) ListInventories(_ context.Context, skip, limit int) ([]*Inventory, error) {
	out := []*Inventory{}
	for _, inv := range m.rows {
		if skip > 0 {
			skip--
			continue
		}
		if len(out) == limit {
			break
		}
		inv := inv
		out = append(out, &inv)
	}
	return out, nil
}

func (m *memRepo) GetInventory(_ context.Context, productID, pharmacyID int64) (*Inventory, error) {
	inv, ok := m.rows[[2]int64{productID, pharmacyID}]
	if !ok {
		return nil, apperr.NotFound("inventory (%d, %d)", productID, pharmacyID)
	}
	return &inv, nil
}

func (m *memRepo) CreateInventory(_ context.Context, inv *Inventory) error {
	k := [2]int64{inv.ProductID, inv.PharmacyID}
	if _, ok := m.rows[k]; ok {
		return apperr.Conflict("inventory %v", k)
	}
	m.writes++
	inv.CreatedAt = time.Now()
	m.rows[k] = *inv
	return nil
}

func (m *memRepo) UpdateInventory(_ context.Context, productID, pharmacyID int64, inv *Inventory) error {
	old := [2]int64{productID, pharmacyID}
	if _, ok := m.rows[old]; !ok {
		return apperr.NotFound("inventory %v", old)
	}
	m.writes++
	delete(m.rows, old)
	m.rows[[2]int64{inv.ProductID, inv.PharmacyID}] = *inv
	return nil
}

func (m *memRepo) DeleteInventory(_ context.Context, productID, pharmacyID int64) error {
	k := [2]int64{productID, pharmacyID}
	if _, ok := m.rows[k]; !ok {
		return apperr.NotFound("inventory %v", k)
	}
	m.writes++
	delete(m.rows, k)
	return nil
}

func newTestService() (Service, *memRepo, *testutil.Checker) {
	repo, check := newMemRepo(), testutil.NewChecker()
	return NewService(repo, &testutil.Tx{}, check), repo, check
}

func ptr[T any](v T) *T { return &v }

func TestCreateInventory(t *testing.T) {
	svc, _, check := newTestService()
	ctx := context.Background()

	inv, err := svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Stock: 5, Price: decimal.RequireFromString("2.50")})
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Stock)
	assert.Equal(t, []string{
		"exists " + testutil.Ref(integrity.Product, int64(1)),
		"exists " + testutil.Ref(integrity.Pharmacy, int64(1)),
		"collision " + testutil.Ref(integrity.Inventory, int64(1), int64(1)),
	}, check.Calls)

	got, err := svc.GetInventory(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2.5")))
}

func TestCreateInventoryTwiceConflicts(t *testing.T) {
	svc, repo, check := newTestService()
	ctx := context.Background()
	req := CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Stock: 1, Price: decimal.NewFromInt(1)}

	_, err := svc.CreateInventory(ctx, req)
	require.NoError(t, err)

	// the primary key settles it even when the pre-check races
	_, err = svc.CreateInventory(ctx, req)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	check.Taken[testutil.Ref(integrity.Inventory, int64(1), int64(1))] = true
	writes := repo.writes
	_, err = svc.CreateInventory(ctx, req)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, writes, repo.writes)
}

func TestCreateInventoryChecksParents(t *testing.T) {
	svc, repo, check := newTestService()
	ctx := context.Background()

	check.Missing[testutil.Ref(integrity.Pharmacy, int64(2))] = true
	_, err := svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 2, Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Stock: -1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Price: decimal.NewFromInt(-3)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Stock: math.MaxInt32 + 1})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, repo.rows)
}

func TestUpdateInventory(t *testing.T) {
	svc, repo, check := newTestService()
	ctx := context.Background()
	_, err := svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Stock: 5, Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	writes := repo.writes

	same, err := svc.UpdateInventory(ctx, 1, 1, Patch{})
	require.NoError(t, err)
	assert.Equal(t, 5, same.Stock)
	assert.Equal(t, writes, repo.writes)

	check.Calls = nil
	got, err := svc.UpdateInventory(ctx, 1, 1, Patch{Stock: ptr(9)})
	require.NoError(t, err)
	assert.Equal(t, 9, got.Stock)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(3)))
	assert.Empty(t, check.Calls)

	_, err = svc.UpdateInventory(ctx, 1, 1, Patch{Stock: ptr(-1)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = svc.UpdateInventory(ctx, 1, 1, Patch{Stock: ptr(math.MaxInt32 + 1)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	moved, err := svc.UpdateInventory(ctx, 1, 1, Patch{PharmacyID: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.PharmacyID)
	assert.Equal(t, []string{
		"exists " + testutil.Ref(integrity.Pharmacy, int64(2)),
		"collision " + testutil.Ref(integrity.Inventory, int64(1), int64(2)),
	}, check.Calls)
	_, err = svc.GetInventory(ctx, 1, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	check.Taken[testutil.Ref(integrity.Inventory, int64(3), int64(2))] = true
	_, err = svc.UpdateInventory(ctx, 1, 2, Patch{ProductID: ptr(int64(3))})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.UpdateInventory(ctx, 8, 8, Patch{Stock: ptr(1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteInventory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.CreateInventory(ctx, CreateInventoryRequest{ProductID: 1, PharmacyID: 1, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteInventory(ctx, 1, 1))
	assert.ErrorIs(t, svc.DeleteInventory(ctx, 1, 1), apperr.ErrNotFound)
}
