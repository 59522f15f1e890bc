package gallery

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"imagestudio/internal/render"
	"imagestudio/internal/storage"
)

// EnsureSeedAssets writes a placeholder for every bundled gallery image that
// is missing from the store, so a fresh checkout serves a usable gallery.
// Existing files are left alone.
func EnsureSeedAssets(ctx context.Context, files *storage.FileStore, logger zerolog.Logger) (int, error) {
	written := 0
	for i, s := range seedImages {
		key := SeedKeyPrefix + s.file
		if files.Exists(key) {
			continue
		}
		var buf bytes.Buffer
		if err := render.Placeholder(&buf, i, s.size); err != nil {
			return written, fmt.Errorf("seed %s: %w", key, err)
		}
		if _, err := files.Write(ctx, key, buf.Bytes()); err != nil {
			return written, fmt.Errorf("seed %s: %w", key, err)
		}
		logger.Debug().Str("key", key).Msg("seed asset written")
		written++
	}
	return written, nil
}
