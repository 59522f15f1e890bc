package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"imagestudio/internal/domain"
)

var placeholderPalette = [][3]float64{
	{0.95, 0.55, 0.30},
	{0.70, 0.45, 0.85},
	{0.30, 0.75, 0.45},
	{0.25, 0.55, 0.80},
	{0.20, 0.60, 0.35},
	{0.85, 0.35, 0.35},
	{0.65, 0.85, 0.95},
}

// Placeholder writes a JPEG stand-in for a missing gallery asset: a flat
// background in a palette color with a lighter disc in the middle.
func Placeholder(w io.Writer, index int, size domain.Dimensions) error {
	size = size.Clamped()
	c := placeholderPalette[((index%len(placeholderPalette))+len(placeholderPalette))%len(placeholderPalette)]

	dc := gg.NewContext(size.Width, size.Height)
	defer dc.Close()

	dc.SetRGB(c[0], c[1], c[2])
	dc.DrawRectangle(0, 0, float64(size.Width), float64(size.Height))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}
	dc.SetRGBA(1, 1, 1, 0.35)
	dc.DrawCircle(float64(size.Width)/2, float64(size.Height)/2, float64(min(size.Width, size.Height))/4)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}
	return dc.EncodeJPEG(w, 85)
}
