// Package render rasterises editor sessions: the inpainting mask sent with
// erase and fill jobs, and a composited preview of the expanded canvas.
package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"

	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
)

const checkerCell = 10.0

// MaxPixels bounds the area of any surface rendered here.
const MaxPixels = domain.MaxDimension * domain.MaxDimension

// Mask writes a PNG at the target size: committed strokes in white on black.
// Strokes are recorded in preview pixels, so both coordinates and brush width
// are scaled up to the target.
func Mask(w io.Writer, snap editor.Snapshot) error {
	target := snap.Target.Clamped()
	scale := snap.Geometry.ScaleToTarget(target)
	if err := checkArea(target.Width, target.Height); err != nil {
		return err
	}

	dc := gg.NewContext(target.Width, target.Height)
	defer dc.Close()

	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(0, 0, float64(target.Width), float64(target.Height))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("render mask background: %w", err)
	}

	dc.SetRGB(1, 1, 1)
	if err := drawStrokes(dc, snap.Mask.Strokes, scale, float64(snap.BrushSize)*scale); err != nil {
		return fmt.Errorf("render mask strokes: %w", err)
	}
	return dc.EncodePNG(w)
}

// Preview writes a PNG of the preview canvas: a transparency checkerboard,
// the original image centered inside it and the mask in translucent red.
// original may be nil when the asset could not be decoded.
func Preview(w io.Writer, snap editor.Snapshot, original image.Image) error {
	geom := snap.Geometry
	cw, ch := pixels(geom.CanvasW), pixels(geom.CanvasH)
	if err := checkArea(cw, ch); err != nil {
		return err
	}

	dc := gg.NewContext(cw, ch)
	defer dc.Close()

	if err := drawCheckerboard(dc, cw, ch); err != nil {
		return fmt.Errorf("render checkerboard: %w", err)
	}

	if original != nil {
		scaled := transform.Resize(original, pixels(geom.ImageW), pixels(geom.ImageH), transform.Linear)
		dc.DrawImage(gg.ImageBufFromImage(scaled), math.Round(geom.OffsetX), math.Round(geom.OffsetY))
	}

	strokes := snap.Mask.Strokes
	if len(snap.Mask.ActiveStroke) > 0 {
		strokes = append(strokes, snap.Mask.ActiveStroke)
	}
	dc.SetRGBA(1, 0, 0, 0.5)
	if err := drawStrokes(dc, strokes, 1, float64(snap.BrushSize)); err != nil {
		return fmt.Errorf("render preview strokes: %w", err)
	}
	return dc.EncodePNG(w)
}

func checkArea(w, h int) error {
	if int64(w)*int64(h) > MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds the render budget", domain.ErrInvalidDimensions, w, h)
	}
	return nil
}

func drawStrokes(dc *gg.Context, strokes []domain.Stroke, scale, width float64) error {
	if width <= 0 {
		width = 1
	}
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, s := range strokes {
		switch len(s) {
		case 0:
			continue
		case 1:
			// A click without a drag still paints a dot.
			dc.DrawCircle(s[0].X*scale, s[0].Y*scale, width/2)
			if err := dc.Fill(); err != nil {
				return err
			}
		default:
			dc.MoveTo(s[0].X*scale, s[0].Y*scale)
			for _, p := range s[1:] {
				dc.LineTo(p.X*scale, p.Y*scale)
			}
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

func drawCheckerboard(dc *gg.Context, w, h int) error {
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetRGB(0.85, 0.85, 0.85)
	for y := 0; float64(y)*checkerCell < float64(h); y++ {
		for x := 0; float64(x)*checkerCell < float64(w); x++ {
			if (x+y)%2 == 0 {
				continue
			}
			dc.DrawRectangle(float64(x)*checkerCell, float64(y)*checkerCell, checkerCell, checkerCell)
		}
	}
	return dc.Fill()
}

func pixels(v float64) int {
	if n := int(math.Round(v)); n > 0 {
		return n
	}
	return 1
}
