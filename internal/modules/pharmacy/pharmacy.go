package pharmacy

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

var (
	maxLat = decimal.NewFromInt(90)
	maxLng = decimal.NewFromInt(180)
)

// Pharmacy represents a pharmacy listing together with its images.
// @Description Pharmacy information
// @Description with pharmacy_id, name, address, lat, lng, contact, owner, images and created_at
type Pharmacy struct {
	ID        int64           `db:"pharmacy_id" json:"pharmacy_id"`
	Name      string          `db:"name" json:"name"`
	Address   string          `db:"address" json:"address"`
	Lat       decimal.Decimal `db:"lat" json:"lat"`
	Lng       decimal.Decimal `db:"lng" json:"lng"`
	Contact   string          `db:"contact" json:"contact"`
	Owner     *int64          `db:"owner" json:"owner"`
	Images    []*Image        `db:"-" json:"images"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// PharmacyPatch is a partial pharmacy update; nil fields are left alone.
type PharmacyPatch struct {
	Name    *string          `json:"name"`
	Address *string          `json:"address"`
	Lat     *decimal.Decimal `json:"lat"`
	Lng     *decimal.Decimal `json:"lng"`
	Contact *string          `json:"contact"`
	Owner   *int64           `json:"owner"`
}

func (p PharmacyPatch) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Lat == nil && p.Lng == nil && p.Contact == nil && p.Owner == nil
}

func (p PharmacyPatch) Apply(ph *Pharmacy) {
	if p.Name != nil {
		ph.Name = *p.Name
	}
	if p.Address != nil {
		ph.Address = *p.Address
	}
	if p.Lat != nil {
		ph.Lat = *p.Lat
	}
	if p.Lng != nil {
		ph.Lng = *p.Lng
	}
	if p.Contact != nil {
		ph.Contact = *p.Contact
	}
	if p.Owner != nil {
		ph.Owner = p.Owner
	}
}

func (p PharmacyPatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperr.Invalid("name must not be empty")
	}
	return validateCoords(p.Lat, p.Lng)
}

func validateCoords(lat, lng *decimal.Decimal) error {
	if lat != nil && lat.Abs().GreaterThan(maxLat) {
		return apperr.Invalid("lat %s is outside [-90, 90]", lat)
	}
	if lng != nil && lng.Abs().GreaterThan(maxLng) {
		return apperr.Invalid("lng %s is outside [-180, 180]", lng)
	}
	return nil
}
