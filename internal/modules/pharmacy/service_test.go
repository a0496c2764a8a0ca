package pharmacy

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
	"github.com/pharmaguide/pharmaguide-backend/internal/testutil"
)

type fixture struct {
	svc        Service
	pharmacies *memPharmacies
	images     *memImages
	files      *testutil.Images
	tx         *testutil.Tx
	check      *testutil.Checker
}

func newFixture() fixture {
	f := fixture{
		pharmacies: newMemPharmacies(),
		images:     newMemImages(),
		files:      testutil.NewImages(),
		tx:         &testutil.Tx{},
		check:      testutil.NewChecker(),
	}
	f.svc = NewService(f.pharmacies, f.images, f.files, f.tx, f.check)
	return f
}

func ptr[T any](v T) *T { return &v }

func (f fixture) pharmacy(t *testing.T) *Pharmacy {
	t.Helper()
	p, err := f.svc.CreatePharmacy(context.Background(), CreatePharmacyRequest{
		Name: "Central", Lat: decimal.RequireFromString("-1.2921"), Lng: decimal.RequireFromString("36.8219"),
	})
	require.NoError(t, err)
	return p
}

func TestCreatePharmacy(t *testing.T) {
	f := newFixture()
	owner := int64(3)

	p, err := f.svc.CreatePharmacy(context.Background(), CreatePharmacyRequest{
		Name: "Central", Address: "Main St", Lat: decimal.RequireFromString("10.5"),
		Lng: decimal.RequireFromString("-20.25"), Contact: "555", Owner: &owner,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.True(t, p.Lat.Equal(decimal.RequireFromString("10.5")))
	assert.Empty(t, p.Images)
	assert.Equal(t, []string{"exists " + testutil.Ref(integrity.User, owner)}, f.check.Calls)

	got, err := f.svc.GetPharmacy(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main St", got.Address)
	assert.Equal(t, &owner, got.Owner)
}

func TestCreatePharmacyValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreatePharmacy(ctx, CreatePharmacyRequest{Name: ""})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = f.svc.CreatePharmacy(ctx, CreatePharmacyRequest{Name: "x", Lat: decimal.NewFromInt(91)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = f.svc.CreatePharmacy(ctx, CreatePharmacyRequest{Name: "x", Lng: decimal.NewFromInt(-181)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	f.check.Missing[testutil.Ref(integrity.User, int64(8))] = true
	_, err = f.svc.CreatePharmacy(ctx, CreatePharmacyRequest{Name: "x", Owner: ptr(int64(8))})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, f.pharmacies.rows)
}

func TestUpdatePharmacy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)

	same, err := f.svc.UpdatePharmacy(ctx, p.ID, PharmacyPatch{})
	require.NoError(t, err)
	assert.Equal(t, p.Name, same.Name)
	assert.True(t, p.Lat.Equal(same.Lat))

	got, err := f.svc.UpdatePharmacy(ctx, p.ID, PharmacyPatch{Contact: ptr("0700"), Lat: ptr(decimal.NewFromInt(5))})
	require.NoError(t, err)
	assert.Equal(t, "Central", got.Name)
	assert.Equal(t, "0700", got.Contact)
	assert.True(t, got.Lat.Equal(decimal.NewFromInt(5)))

	_, err = f.svc.UpdatePharmacy(ctx, 99, PharmacyPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	f.check.Missing[testutil.Ref(integrity.User, int64(4))] = true
	_, err = f.svc.UpdatePharmacy(ctx, p.ID, PharmacyPatch{Owner: ptr(int64(4))})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeletePharmacy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)

	ref := testutil.Ref(integrity.Pharmacy, p.ID)
	f.check.Blocked[ref] = true
	assert.ErrorIs(t, f.svc.DeletePharmacy(ctx, p.ID), apperr.ErrConflict)
	assert.Len(t, f.pharmacies.rows, 1)

	delete(f.check.Blocked, ref)
	require.NoError(t, f.svc.DeletePharmacy(ctx, p.ID))
	_, err := f.svc.GetPharmacy(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeletePharmacy(ctx, p.ID), apperr.ErrNotFound)
}

func TestImageLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)

	img, err := f.svc.CreateImage(ctx, CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "img-1.jpg", img.Name)
	assert.True(t, f.files.Has(img.Name, ImageFolder))

	got, err := f.svc.GetPharmacy(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	assert.Equal(t, img.Name, got.Images[0].Name)

	replaced, err := f.svc.UpdateImage(ctx, img.Name, ImagePatch{File: []byte("png2")})
	require.NoError(t, err)
	assert.Equal(t, "img-2.jpg", replaced.Name)
	assert.False(t, f.files.Has("img-1.jpg", ImageFolder))
	assert.True(t, f.files.Has("img-2.jpg", ImageFolder))
	_, err = f.svc.GetImage(ctx, "img-1.jpg")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.svc.DeleteImage(ctx, replaced.Name))
	assert.Zero(t, f.files.Count())
	assert.Empty(t, f.images.rows)
}

func TestCreateImageChecksPharmacyBeforeSaving(t *testing.T) {
	f := newFixture()
	f.check.Missing[testutil.Ref(integrity.Pharmacy, int64(5))] = true

	_, err := f.svc.CreateImage(context.Background(), CreateImageRequest{PharmacyID: 5, File: []byte("png")})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Zero(t, f.files.Count())
}

func TestCreateImageRejectsUndecodableFile(t *testing.T) {
	f := newFixture()
	p := f.pharmacy(t)

	_, err := f.svc.CreateImage(context.Background(), CreateImageRequest{PharmacyID: p.ID, File: testutil.InvalidImage})
	assert.ErrorIs(t, err, apperr.ErrInvalidImage)
	assert.Empty(t, f.images.rows)

	_, err = f.svc.CreateImage(context.Background(), CreateImageRequest{PharmacyID: p.ID})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCreateImageRemovesFileWhenInsertFails(t *testing.T) {
	f := newFixture()
	p := f.pharmacy(t)
	f.images.createErr = apperr.ErrIOFailure

	_, err := f.svc.CreateImage(context.Background(), CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	assert.ErrorIs(t, err, apperr.ErrIOFailure)
	assert.Zero(t, f.files.Count())
}

func TestCreateImageRemovesFileWhenCommitFails(t *testing.T) {
	f := newFixture()
	p := f.pharmacy(t)
	f.tx.Err = errors.New("commit: connection reset")

	_, err := f.svc.CreateImage(context.Background(), CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	assert.Error(t, err)
	assert.Zero(t, f.files.Count())
}

func TestUpdateImageKeepsOldFileWhenRowUpdateFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)
	img, err := f.svc.CreateImage(ctx, CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	require.NoError(t, err)

	f.images.updateErr = apperr.ErrIOFailure
	_, err = f.svc.UpdateImage(ctx, img.Name, ImagePatch{File: []byte("png2")})
	assert.ErrorIs(t, err, apperr.ErrIOFailure)
	assert.True(t, f.files.Has(img.Name, ImageFolder))
	assert.Equal(t, 1, f.files.Count())
}

func TestUpdateImageMovesToAnotherPharmacy(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b := f.pharmacy(t), f.pharmacy(t)
	img, err := f.svc.CreateImage(ctx, CreateImageRequest{PharmacyID: a.ID, File: []byte("png")})
	require.NoError(t, err)

	moved, err := f.svc.UpdateImage(ctx, img.Name, ImagePatch{PharmacyID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, img.Name, moved.Name)
	assert.Equal(t, b.ID, moved.PharmacyID)
	assert.True(t, f.files.Has(img.Name, ImageFolder))

	same, err := f.svc.UpdateImage(ctx, img.Name, ImagePatch{})
	require.NoError(t, err)
	assert.Equal(t, b.ID, same.PharmacyID)
}

func TestDeleteImageFailsWhenFileRemovalFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)
	img, err := f.svc.CreateImage(ctx, CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	require.NoError(t, err)

	f.files.RemoveErr = apperr.ErrIOFailure
	assert.ErrorIs(t, f.svc.DeleteImage(ctx, img.Name), apperr.ErrIOFailure)
	assert.True(t, f.files.Has(img.Name, ImageFolder))
}

func TestDeleteImageToleratesMissingFile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := f.pharmacy(t)
	img, err := f.svc.CreateImage(ctx, CreateImageRequest{PharmacyID: p.ID, File: []byte("png")})
	require.NoError(t, err)
	require.NoError(t, f.files.Remove(img.Name, ImageFolder))

	require.NoError(t, f.svc.DeleteImage(ctx, img.Name))
	assert.ErrorIs(t, f.svc.DeleteImage(ctx, img.Name), apperr.ErrNotFound)
}
