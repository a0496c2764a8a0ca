// Package testutil provides in-memory stand-ins for the transactor, the
// integrity checker and the image store so services can be tested without
// PostgreSQL or a filesystem.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
	"github.com/pharmaguide/pharmaguide-backend/internal/integrity"
)

// Tx runs fn directly. Set Err to make every commit fail after fn succeeds.
type Tx struct {
	Err   error
	Calls int
}

func (t *Tx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return t.Err
}

// Ref renders kind and key the way Checker indexes them, e.g. "inventory:1/2".
func Ref(kind integrity.Kind, key ...any) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = fmt.Sprint(k)
	}
	return string(kind) + ":" + strings.Join(parts, "/")
}

// Checker answers integrity checks from three sets. Every call is recorded
// in Calls.
type Checker struct {
	mu sync.Mutex
	// Missing refs fail EnsureExists.
	Missing map[string]bool
	// Taken refs fail EnsureNoCollision.
	Taken map[string]bool
	// Blocked refs fail EnsureDeletable.
	Blocked map[string]bool
	Calls   []string
}

func NewChecker() *Checker {
	return &Checker{Missing: map[string]bool{}, Taken: map[string]bool{}, Blocked: map[string]bool{}}
}

func (c *Checker) record(op, ref string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, op+" "+ref)
}

func (c *Checker) EnsureExists(_ context.Context, kind integrity.Kind, key ...any) error {
	ref := Ref(kind, key...)
	c.record("exists", ref)
	if c.Missing[ref] {
		return apperr.NotFound("%s", ref)
	}
	return nil
}

func (c *Checker) EnsureNoCollision(_ context.Context, kind integrity.Kind, key ...any) error {
	ref := Ref(kind, key...)
	c.record("collision", ref)
	if c.Taken[ref] {
		return apperr.Conflict("%s already exists", ref)
	}
	return nil
}

func (c *Checker) EnsureDeletable(_ context.Context, kind integrity.Kind, key ...any) error {
	ref := Ref(kind, key...)
	c.record("deletable", ref)
	if c.Blocked[ref] {
		return apperr.Conflict("%s has dependents", ref)
	}
	return nil
}

// InvalidImage is the payload Images refuses to decode.
var InvalidImage = []byte("not an image")

// Images keeps saved files in a map keyed by folder/name. Names are handed
// out in sequence: img-1.jpg, img-2.jpg and so on.
type Images struct {
	mu    sync.Mutex
	n     int
	Files map[string][]byte

	SaveErr   error
	RemoveErr error
}

func NewImages() *Images { return &Images{Files: map[string][]byte{}} }

func (s *Images) Save(raw []byte, folder string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if string(raw) == string(InvalidImage) {
		return "", apperr.ErrInvalidImage
	}
	if s.SaveErr != nil {
		return "", s.SaveErr
	}
	s.n++
	name := fmt.Sprintf("img-%d.jpg", s.n)
	s.Files[folder+"/"+name] = raw
	return name, nil
}

func (s *Images) Remove(name, folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	if _, ok := s.Files[folder+"/"+name]; !ok {
		return apperr.NotFound("image %s/%s", folder, name)
	}
	delete(s.Files, folder+"/"+name)
	return nil
}

// Has reports whether folder/name is currently stored.
func (s *Images) Has(name, folder string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Files[folder+"/"+name]
	return ok
}

// Count returns how many files are stored.
func (s *Images) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Files)
}
