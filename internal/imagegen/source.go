// Package imagegen inspects source images handed to the editor.
package imagegen

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imagestudio/internal/domain"
)

// SourceImage is an asset loaded from storage together with its intrinsic
// size.
type SourceImage struct {
	Data     []byte
	MIMEType string
	Name     string
	Format   string
	Width    int
	Height   int
}

// Dimensions returns the intrinsic size.
func (s SourceImage) Dimensions() domain.Dimensions {
	return domain.Dimensions{Width: s.Width, Height: s.Height}
}

// ProbeDimensions reads the image header and returns its pixel size without
// decoding the pixels.
func ProbeDimensions(data []byte) (domain.Dimensions, string, error) {
	if len(data) == 0 {
		return domain.Dimensions{}, "", fmt.Errorf("%w: empty image", domain.ErrInvalidDimensions)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Dimensions{}, "", fmt.Errorf("%w: %v", domain.ErrInvalidDimensions, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.Dimensions{}, format, fmt.Errorf("%w: %dx%d", domain.ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	return domain.Dimensions{Width: cfg.Width, Height: cfg.Height}, format, nil
}

// LoadSource wraps raw asset bytes and probes their size.
func LoadSource(name string, data []byte) (SourceImage, error) {
	dims, format, err := ProbeDimensions(data)
	if err != nil {
		return SourceImage{}, fmt.Errorf("probe %s: %w", name, err)
	}
	return SourceImage{
		Data:     data,
		MIMEType: http.DetectContentType(data),
		Name:     name,
		Format:   format,
		Width:    dims.Width,
		Height:   dims.Height,
	}, nil
}

// Decode fully decodes the source pixels.
func (s SourceImage) Decode() (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(s.Data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Name, err)
	}
	return img, nil
}
