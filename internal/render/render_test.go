package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"testing"

	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
)

func maskedSession(t *testing.T) *editor.Session {
	t.Helper()
	s := editor.NewSession("s1", domain.ImageRef{ID: 1}, 400)
	if err := s.ResolveOriginal(domain.Dimensions{Width: 800, Height: 800}); err != nil {
		t.Fatalf("ResolveOriginal: %v", err)
	}
	s.SetMasking(true)
	r := s.Recorder()
	r.PointerDown(domain.Point{X: 20, Y: 50})
	r.PointerMove(domain.Point{X: 200, Y: 50})
	r.PointerUp()
	r.PointerDown(domain.Point{X: 300, Y: 300})
	r.PointerUp()
	return s
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func gray(c color.Color) uint32 {
	r, _, _, _ := c.RGBA()
	return r >> 8
}

func TestMaskScalesStrokesToTarget(t *testing.T) {
	s := maskedSession(t)
	var buf bytes.Buffer
	if err := Mask(&buf, s.Snapshot()); err != nil {
		t.Fatalf("Mask: %v", err)
	}
	img := decodePNG(t, buf.Bytes())
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 800 {
		t.Fatalf("mask size = %dx%d, want 800x800", b.Dx(), b.Dy())
	}

	// Preview (100,50) on the drag maps to (200,100) at 2x.
	if v := gray(img.At(200, 100)); v < 200 {
		t.Fatalf("drag pixel = %d, want white", v)
	}
	// The single click at (300,300) becomes a dot at (600,600).
	if v := gray(img.At(600, 600)); v < 200 {
		t.Fatalf("dot pixel = %d, want white", v)
	}
	if v := gray(img.At(780, 20)); v > 20 {
		t.Fatalf("unmasked pixel = %d, want black", v)
	}
}

func TestMaskEmpty(t *testing.T) {
	s := editor.NewSession("s2", domain.ImageRef{ID: 1}, 400)
	var buf bytes.Buffer
	if err := Mask(&buf, s.Snapshot()); err != nil {
		t.Fatalf("Mask: %v", err)
	}
	img := decodePNG(t, buf.Bytes())
	if b := img.Bounds(); b.Dx() != editor.PlaceholderSize || b.Dy() != editor.PlaceholderSize {
		t.Fatalf("mask size = %v, want placeholder", b)
	}
	if v := gray(img.At(256, 256)); v != 0 {
		t.Fatalf("empty mask pixel = %d, want 0", v)
	}
}

func TestMaskRejectsOversizedTarget(t *testing.T) {
	snap := maskedSession(t).Snapshot()
	snap.Target = domain.Dimensions{Width: 60000, Height: 60000}
	var buf bytes.Buffer
	if err := Mask(&buf, snap); !errors.Is(err, domain.ErrInvalidDimensions) {
		t.Fatalf("Mask error = %v, want ErrInvalidDimensions", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Mask wrote %d bytes for a rejected target", buf.Len())
	}
}

func TestMaskOfFittedCustomSize(t *testing.T) {
	s := maskedSession(t)
	s.SetCustomSize(60000, 100)
	var buf bytes.Buffer
	if err := Mask(&buf, s.Snapshot()); err != nil {
		t.Fatalf("Mask: %v", err)
	}
	img := decodePNG(t, buf.Bytes())
	if b := img.Bounds(); b.Dx() != domain.MaxDimension || b.Dy() != 14 {
		t.Fatalf("mask size = %dx%d, want %dx14", b.Dx(), b.Dy(), domain.MaxDimension)
	}
}

func TestPreviewComposite(t *testing.T) {
	s := editor.NewSession("s3", domain.ImageRef{ID: 1}, 400)
	if err := s.ResolveOriginal(domain.Dimensions{Width: 400, Height: 200}); err != nil {
		t.Fatalf("ResolveOriginal: %v", err)
	}
	if err := s.SelectRatio("1:1"); err != nil {
		t.Fatalf("SelectRatio: %v", err)
	}

	original := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			original.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := Preview(&buf, s.Snapshot(), original); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	img := decodePNG(t, buf.Bytes())
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 400 {
		t.Fatalf("preview size = %dx%d, want 400x400", b.Dx(), b.Dy())
	}

	// 400x200 in a square canvas: image occupies rows 100..300.
	if _, _, b, _ := img.At(200, 200).RGBA(); b>>8 < 200 {
		t.Fatalf("center pixel is not the original image: %v", img.At(200, 200))
	}
	r, g, b, _ := img.At(5, 5).RGBA()
	if r != g || g != b {
		t.Fatalf("letterbox pixel %v is not checkerboard gray", img.At(5, 5))
	}
}

func TestPreviewWithoutOriginal(t *testing.T) {
	s := maskedSession(t)
	var buf bytes.Buffer
	if err := Preview(&buf, s.Snapshot(), nil); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	img := decodePNG(t, buf.Bytes())
	r, g, _, _ := img.At(100, 50).RGBA()
	if r <= g {
		t.Fatalf("stroke pixel %v is not tinted red", img.At(100, 50))
	}
}

func TestPlaceholderJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := Placeholder(&buf, 3, domain.Dimensions{Width: 64, Height: 32}); err != nil {
		t.Fatalf("Placeholder: %v", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil || format != "jpeg" || cfg.Width != 64 || cfg.Height != 32 {
		t.Fatalf("placeholder = %+v %q %v", cfg, format, err)
	}
}
