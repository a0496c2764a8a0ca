package imagestore

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/pharmaguide/pharmaguide-backend/internal/apperr"
)

// Remover deletes a stored file. *Store satisfies it.
type Remover interface {
	Remove(name, folder string) error
}

// Drop removes the file behind a row that is being deleted or replaced.
// A file that is already gone is logged and treated as removed.
func Drop(ctx context.Context, s Remover, name, folder string) error {
	err := s.Remove(name, folder)
	if errors.Is(err, apperr.ErrNotFound) {
		zerolog.Ctx(ctx).Warn().Str("folder", folder).Str("image", name).Msg("image file already missing")
		return nil
	}
	return err
}

// Discard removes a file saved by an operation that did not commit. Empty
// names are ignored and failures are only logged.
func Discard(ctx context.Context, s Remover, name, folder string) {
	if name == "" {
		return
	}
	if err := s.Remove(name, folder); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("folder", folder).Str("image", name).Msg("orphaned image file")
	}
}
