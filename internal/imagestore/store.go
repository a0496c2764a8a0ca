// Package imagestore keeps uploaded images on the local filesystem. Every
// upload is decoded, re-encoded as JPEG and written under a fresh random name.
package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Extension is appended to every stored name.
const Extension = ".jpg"

// Store writes images below root, one sub-folder per owning entity.
type Store struct {
	root    string
	quality int
}

func New(root string, quality int) *Store {
	return &Store{root: root, quality: quality}
}

// Save decodes raw, re-encodes it as JPEG into root/folder and returns the
// generated file name.
func (s *Store) Save(raw []byte, folder string) (string, error) {
	if err := checkName(folder); err != nil {
		return "", err
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidImage, err)
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrIOFailure, err)
	}

	name := uuid.NewString() + Extension
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrIOFailure, err)
	}
	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(s.quality)); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: encode %s: %w", apperr.ErrIOFailure, name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", apperr.ErrIOFailure, err)
	}
	return name, nil
}

// Remove deletes root/folder/name. A missing file is apperr.ErrNotFound.
func (s *Store) Remove(name, folder string) error {
	if err := checkName(folder); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, folder, name))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return apperr.NotFound("image %s/%s", folder, name)
	default:
		return fmt.Errorf("%w: %w", apperr.ErrIOFailure, err)
	}
}

// Path is where name is stored inside folder.
func (s *Store) Path(name, folder string) string {
	return filepath.Join(s.root, folder, name)
}

// Root is the directory every folder lives in.
func (s *Store) Root() string { return s.root }

func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return apperr.Invalid("bad image path segment %q", name)
	}
	return nil
}
