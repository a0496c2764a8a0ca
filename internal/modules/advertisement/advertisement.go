package advertisement

import (
	"strings"
	"time"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// ImageFolder is the image store folder for advertisement banners.
const ImageFolder = "advertisements"

// Advertisement is a banner placed by a user. Image names the stored file.
// @Description Advertisement information
// @Description with advertisement_id, title, description, image, owner and created_at
type Advertisement struct {
	ID          int64     `db:"advertisement_id" json:"advertisement_id"`
	Title       string    `db:"advertisement_title" json:"advertisement_title"`
	Description string    `db:"advertisement_description" json:"advertisement_description"`
	Image       string    `db:"advertisement_image" json:"advertisement_image"`
	Owner       *int64    `db:"owner" json:"owner"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Patch is a partial advertisement update. A non-nil File replaces the image.
type Patch struct {
	Title       *string
	Description *string
	Owner       *int64
	File        []byte
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Owner == nil && p.File == nil
}

// Apply copies the text fields and owner onto a. The image is handled by
// the service.
func (p Patch) Apply(a *Advertisement) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Owner != nil {
		a.Owner = p.Owner
	}
}

func (p Patch) validate() error {
	if p.Title != nil {
		if err := checkText("advertisement_title", *p.Title, 25); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := checkText("advertisement_description", *p.Description, 50); err != nil {
			return err
		}
	}
	return nil
}

func checkText(field, v string, max int) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Invalid("%s is required", field)
	}
	if len(v) > max {
		return apperr.Invalid("%s must be at most %d characters", field, max)
	}
	return nil
}
