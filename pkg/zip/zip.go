// Package zip bundles gallery downloads into a single archive.
package zip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
	Modified time.Time
}

// ArchiveAssets writes every asset into a deflate-compressed archive in the
// given order.
func ArchiveAssets(assets []Asset) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, asset := range assets {
		hdr := &zip.FileHeader{
			Name:     asset.Filename,
			Method:   zip.Deflate,
			Modified: asset.Modified,
		}
		if hdr.Modified.IsZero() {
			hdr.Modified = time.Now().UTC()
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", asset.Filename, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", asset.Filename, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
