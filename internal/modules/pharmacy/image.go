package pharmacy

import "time"

// ImageFolder is the image store folder for pharmacy pictures.
const ImageFolder = "pharmacies"

// Image is a stored picture attached to a pharmacy. Name is the file name
// in ImageFolder and the row key.
type Image struct {
	Name       string    `db:"name" json:"name"`
	PharmacyID int64     `db:"pharmacy_id" json:"pharmacy_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// ImagePatch moves an image to another pharmacy, replaces its file, or both.
type ImagePatch struct {
	PharmacyID *int64
	File       []byte
}

func (p ImagePatch) Empty() bool { return p.PharmacyID == nil && p.File == nil }
