package editor

import (
	"math"
	"testing"

	"imagestudio/internal/domain"
)

const geomTol = 1e-9

func TestComputePreviewGeometryCanvasLongSide(t *testing.T) {
	tests := []struct {
		name   string
		target domain.Dimensions
		wantW  float64
		wantH  float64
	}{
		{name: "square", target: domain.Dimensions{Width: 512, Height: 512}, wantW: 400, wantH: 400},
		{name: "landscape", target: domain.Dimensions{Width: 1600, Height: 900}, wantW: 400, wantH: 225},
		{name: "portrait", target: domain.Dimensions{Width: 1000, Height: 1778}, wantW: 400 * 1000.0 / 1778.0, wantH: 400},
		{name: "small target is scaled up", target: domain.Dimensions{Width: 100, Height: 50}, wantW: 400, wantH: 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := ComputePreviewGeometry(tc.target, tc.target, 400)
			if math.Abs(g.CanvasW-tc.wantW) > geomTol || math.Abs(g.CanvasH-tc.wantH) > geomTol {
				t.Fatalf("canvas = %.4fx%.4f, want %.4fx%.4f", g.CanvasW, g.CanvasH, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestComputePreviewGeometryImageFitsAndIsCentered(t *testing.T) {
	sizes := []domain.Dimensions{
		{Width: 1000, Height: 500},
		{Width: 500, Height: 1000},
		{Width: 512, Height: 512},
		{Width: 1, Height: 4000},
		{Width: 4000, Height: 1},
		{Width: 889, Height: 500},
		{Width: 1000, Height: 1778},
	}
	for _, target := range sizes {
		for _, original := range sizes {
			g := ComputePreviewGeometry(target, original, DefaultMaxPreview)
			if g.ImageW > g.CanvasW || g.ImageH > g.CanvasH {
				t.Fatalf("target %+v original %+v: image %.4fx%.4f exceeds canvas %.4fx%.4f",
					target, original, g.ImageW, g.ImageH, g.CanvasW, g.CanvasH)
			}
			if math.Max(g.CanvasW, g.CanvasH) != DefaultMaxPreview {
				t.Fatalf("target %+v: longer canvas side = %.4f, want %.0f", target, math.Max(g.CanvasW, g.CanvasH), DefaultMaxPreview)
			}
			if math.Abs(g.OffsetX*2+g.ImageW-g.CanvasW) > geomTol || math.Abs(g.OffsetY*2+g.ImageH-g.CanvasH) > geomTol {
				t.Fatalf("target %+v original %+v: image not centered: %+v", target, original, g)
			}
			// The image keeps its own aspect ratio.
			if want, got := original.Aspect(), g.ImageW/g.ImageH; math.Abs(got-want)/want > 1e-6 {
				t.Fatalf("target %+v original %+v: image aspect %.6f, want %.6f", target, original, got, want)
			}
		}
	}
}

func TestComputePreviewGeometryExpandedCanvas(t *testing.T) {
	// 1000x500 expanded to 9:16: the image spans the full canvas width and
	// sits vertically centered.
	target := domain.Dimensions{Width: 1000, Height: 1778}
	original := domain.Dimensions{Width: 1000, Height: 500}
	g := ComputePreviewGeometry(target, original, 400)

	if math.Abs(g.ImageW-g.CanvasW) > geomTol {
		t.Fatalf("ImageW = %.4f, want canvas width %.4f", g.ImageW, g.CanvasW)
	}
	if g.OffsetX != 0 {
		t.Fatalf("OffsetX = %.4f, want 0", g.OffsetX)
	}
	if g.OffsetY <= 0 {
		t.Fatalf("OffsetY = %.4f, want positive inset", g.OffsetY)
	}
}

func TestComputePreviewGeometryZeroInputs(t *testing.T) {
	g := ComputePreviewGeometry(domain.Dimensions{Width: 0, Height: 512}, domain.Dimensions{Width: 512, Height: 512}, 400)
	for _, v := range []float64{g.CanvasW, g.CanvasH, g.ImageW, g.ImageH, g.OffsetX, g.OffsetY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("geometry contains non-finite value: %+v", g)
		}
	}
	if g.CanvasH != 400 {
		t.Fatalf("CanvasH = %.4f, want 400", g.CanvasH)
	}

	g = ComputePreviewGeometry(domain.Dimensions{}, domain.Dimensions{}, 0)
	if g.CanvasW != DefaultMaxPreview || g.CanvasH != DefaultMaxPreview {
		t.Fatalf("zero inputs canvas = %.4fx%.4f, want default square", g.CanvasW, g.CanvasH)
	}
}

func TestPreviewGeometryScaleToTarget(t *testing.T) {
	target := domain.Dimensions{Width: 1600, Height: 900}
	g := ComputePreviewGeometry(target, target, 400)
	if got := g.ScaleToTarget(target); got != 4 {
		t.Fatalf("ScaleToTarget = %.4f, want 4", got)
	}
	if got := (PreviewGeometry{}).ScaleToTarget(target); got != 1 {
		t.Fatalf("empty geometry ScaleToTarget = %.4f, want 1", got)
	}
}

func TestPreviewGeometryImageRoundTrip(t *testing.T) {
	g := ComputePreviewGeometry(domain.Dimensions{Width: 1000, Height: 1778}, domain.Dimensions{Width: 1000, Height: 500}, 400)
	corner := g.FromImage(domain.Point{X: 0, Y: 0})
	if math.Abs(corner.X-g.OffsetX) > geomTol || math.Abs(corner.Y-g.OffsetY) > geomTol {
		t.Fatalf("image origin = %v, want offset (%.4f,%.4f)", corner, g.OffsetX, g.OffsetY)
	}
	p := domain.Point{X: 57.25, Y: 210.5}
	back := g.FromImage(g.ToImage(p))
	if math.Abs(back.X-p.X) > geomTol || math.Abs(back.Y-p.Y) > geomTol {
		t.Fatalf("round trip = %v, want %v", back, p)
	}
}
