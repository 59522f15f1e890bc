package editor

import "imagestudio/internal/domain"

// DefaultMaxPreview is the longer side of the on-screen canvas preview.
const DefaultMaxPreview = 400.0

// PreviewGeometry places the scaled target canvas and the original image
// inside it. All values are in preview pixels; the image is centered, so
// OffsetX and OffsetY are the equal insets on each axis.
type PreviewGeometry struct {
	CanvasW float64 `json:"canvas_w"`
	CanvasH float64 `json:"canvas_h"`
	ImageW  float64 `json:"image_w"`
	ImageH  float64 `json:"image_h"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// ScaleToTarget returns the factor that maps preview pixels to target pixels
// along the horizontal axis.
func (g PreviewGeometry) ScaleToTarget(target domain.Dimensions) float64 {
	if g.CanvasW <= 0 {
		return 1
	}
	return float64(target.Clamped().Width) / g.CanvasW
}

// ToImage maps a canvas-local point to normalised image coordinates, where
// (0,0) and (1,1) are the corners of the drawn image.
func (g PreviewGeometry) ToImage(p domain.Point) domain.Point {
	if g.ImageW <= 0 || g.ImageH <= 0 {
		return p
	}
	return domain.Point{X: (p.X - g.OffsetX) / g.ImageW, Y: (p.Y - g.OffsetY) / g.ImageH}
}

// FromImage is the inverse of ToImage.
func (g PreviewGeometry) FromImage(p domain.Point) domain.Point {
	if g.ImageW <= 0 || g.ImageH <= 0 {
		return p
	}
	return domain.Point{X: p.X*g.ImageW + g.OffsetX, Y: p.Y*g.ImageH + g.OffsetY}
}

// ComputePreviewGeometry scales target so its longer side equals maxPreview
// and fits original inside that canvas with its own aspect ratio. Both inputs
// are clamped to at least one pixel so a cleared size field cannot divide by
// zero.
func ComputePreviewGeometry(target, original domain.Dimensions, maxPreview float64) PreviewGeometry {
	if maxPreview <= 0 {
		maxPreview = DefaultMaxPreview
	}
	t := target.Clamped()
	o := original.Clamped()

	var g PreviewGeometry
	targetAspect := float64(t.Width) / float64(t.Height)
	if targetAspect >= 1 {
		g.CanvasW = maxPreview
		g.CanvasH = maxPreview / targetAspect
	} else {
		g.CanvasH = maxPreview
		g.CanvasW = maxPreview * targetAspect
	}

	sx := g.CanvasW / float64(o.Width)
	sy := g.CanvasH / float64(o.Height)
	if sx <= sy {
		g.ImageW = g.CanvasW
		g.ImageH = min(float64(o.Height)*sx, g.CanvasH)
	} else {
		g.ImageH = g.CanvasH
		g.ImageW = min(float64(o.Width)*sy, g.CanvasW)
	}

	g.OffsetX = (g.CanvasW - g.ImageW) / 2
	g.OffsetY = (g.CanvasH - g.ImageH) / 2
	return g
}
