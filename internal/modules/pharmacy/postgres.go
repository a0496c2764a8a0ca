package pharmacy

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

// ---- Pharmacy ----

const pharmacyColumns = `pharmacy_id, name, address, lat, lng, contact, owner, created_at`

type pharmacyPostgres struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &pharmacyPostgres{db: db} }

func (r *pharmacyPostgres) ListPharmacies(ctx context.Context, skip, limit int) ([]*Pharmacy, error) {
	out := []*Pharmacy{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT `+pharmacyColumns+`
		FROM pharmacy
		ORDER BY created_at, pharmacy_id
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list pharmacies: %w", database.Translate(err))
	}
	return out, nil
}

func (r *pharmacyPostgres) GetPharmacyByID(ctx context.Context, id int64) (*Pharmacy, error) {
	p := &Pharmacy{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p,
		`SELECT `+pharmacyColumns+` FROM pharmacy WHERE pharmacy_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("pharmacy %d: %w", id, database.Translate(err))
	}
	return p, nil
}

func (r *pharmacyPostgres) CreatePharmacy(ctx context.Context, p *Pharmacy) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p, `
		INSERT INTO pharmacy (name, address, lat, lng, contact, owner)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+pharmacyColumns,
		p.Name, p.Address, p.Lat, p.Lng, p.Contact, p.Owner)
	if err != nil {
		return fmt.Errorf("create pharmacy: %w", database.Translate(err))
	}
	return nil
}

func (r *pharmacyPostgres) UpdatePharmacy(ctx context.Context, id int64, p *Pharmacy) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), p, `
		UPDATE pharmacy
		SET name = $1, address = $2, lat = $3, lng = $4, contact = $5, owner = $6
		WHERE pharmacy_id = $7
		RETURNING `+pharmacyColumns,
		p.Name, p.Address, p.Lat, p.Lng, p.Contact, p.Owner, id)
	if err != nil {
		return fmt.Errorf("update pharmacy %d: %w", id, database.Translate(err))
	}
	return nil
}

func (r *pharmacyPostgres) DeletePharmacy(ctx context.Context, id int64) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM pharmacy WHERE pharmacy_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pharmacy %d: %w", id, database.Translate(err))
	}
	return database.MustAffect(res, fmt.Sprintf("pharmacy %d", id))
}

// ---- Image ----

type imagePostgres struct{ db *sqlx.DB }

func NewImagePostgresRepository(db *sqlx.DB) ImageRepository { return &imagePostgres{db: db} }

func (r *imagePostgres) ListImages(ctx context.Context, skip, limit int) ([]*Image, error) {
	out := []*Image{}
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &out, `
		SELECT name, pharmacy_id, created_at
		FROM pharmacy_image
		ORDER BY created_at, name
		OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list pharmacy images: %w", database.Translate(err))
	}
	return out, nil
}

func (r *imagePostgres) ListImagesByPharmacies(ctx context.Context, ids []int64) (map[int64][]*Image, error) {
	out := make(map[int64][]*Image, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var images []*Image
	err := sqlx.SelectContext(ctx, database.Conn(ctx, r.db), &images, `
		SELECT name, pharmacy_id, created_at
		FROM pharmacy_image
		WHERE pharmacy_id = ANY($1)
		ORDER BY created_at, name`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("load pharmacy images: %w", database.Translate(err))
	}
	for _, img := range images {
		out[img.PharmacyID] = append(out[img.PharmacyID], img)
	}
	return out, nil
}

func (r *imagePostgres) GetImage(ctx context.Context, name string) (*Image, error) {
	img := &Image{}
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img,
		`SELECT name, pharmacy_id, created_at FROM pharmacy_image WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("pharmacy image %s: %w", name, database.Translate(err))
	}
	return img, nil
}

func (r *imagePostgres) CreateImage(ctx context.Context, img *Image) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img, `
		INSERT INTO pharmacy_image (name, pharmacy_id)
		VALUES ($1, $2)
		RETURNING name, pharmacy_id, created_at`, img.Name, img.PharmacyID)
	if err != nil {
		return fmt.Errorf("create pharmacy image: %w", database.Translate(err))
	}
	return nil
}

func (r *imagePostgres) UpdateImage(ctx context.Context, name string, img *Image) error {
	err := sqlx.GetContext(ctx, database.Conn(ctx, r.db), img, `
		UPDATE pharmacy_image
		SET name = $1, pharmacy_id = $2
		WHERE name = $3
		RETURNING name, pharmacy_id, created_at`, img.Name, img.PharmacyID, name)
	if err != nil {
		return fmt.Errorf("update pharmacy image %s: %w", name, database.Translate(err))
	}
	return nil
}

func (r *imagePostgres) DeleteImage(ctx context.Context, name string) error {
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, `DELETE FROM pharmacy_image WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete pharmacy image %s: %w", name, database.Translate(err))
	}
	return database.MustAffect(res, "pharmacy image "+name)
}
