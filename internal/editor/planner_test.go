package editor

import (
	"errors"
	"math"
	"testing"

	"imagestudio/internal/domain"
)

func TestComputeTargetDimensionsScenarios(t *testing.T) {
	tests := []struct {
		name     string
		original domain.Dimensions
		label    string
		want     domain.Dimensions
	}{
		{
			name:     "landscape to 9:16 keeps width",
			original: domain.Dimensions{Width: 1000, Height: 500},
			label:    "9:16",
			want:     domain.Dimensions{Width: 1000, Height: 1778},
		},
		{
			name:     "square to 16:9 keeps height",
			original: domain.Dimensions{Width: 500, Height: 500},
			label:    "16:9",
			want:     domain.Dimensions{Width: 889, Height: 500},
		},
		{
			name:     "square to 1:1 is unchanged",
			original: domain.Dimensions{Width: 640, Height: 640},
			label:    "1:1",
			want:     domain.Dimensions{Width: 640, Height: 640},
		},
		{
			name:     "portrait to 3:2 keeps height",
			original: domain.Dimensions{Width: 600, Height: 900},
			label:    "3:2",
			want:     domain.Dimensions{Width: 1350, Height: 900},
		},
		{
			name:     "landscape to 1:1 keeps width",
			original: domain.Dimensions{Width: 800, Height: 600},
			label:    "1:1",
			want:     domain.Dimensions{Width: 800, Height: 800},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			option, err := LookupAspectRatio(tc.label)
			if err != nil {
				t.Fatalf("LookupAspectRatio(%q) error: %v", tc.label, err)
			}
			got := ComputeTargetDimensions(tc.original, option, false)
			if got != tc.want {
				t.Fatalf("ComputeTargetDimensions() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestComputeTargetDimensionsOriginalIsIdentity(t *testing.T) {
	originals := []domain.Dimensions{
		{Width: 1000, Height: 500},
		{Width: 333, Height: 777},
		{Width: 1, Height: 1},
		{Width: 4096, Height: 2160},
	}
	for _, o := range originals {
		for _, option := range AspectRatios() {
			if got := ComputeTargetDimensions(o, option, true); got != o {
				t.Fatalf("ComputeTargetDimensions(%+v, %s, true) = %+v, want unchanged", o, option.Label, got)
			}
		}
	}
}

func TestComputeTargetDimensionsOriginalSentinelIsNotSquare(t *testing.T) {
	original, err := LookupAspectRatio(OriginalLabel)
	if err != nil {
		t.Fatalf("LookupAspectRatio: %v", err)
	}
	if !original.IsOriginal() {
		t.Fatalf("IsOriginal() = false for %q", original.Label)
	}
	square, _ := LookupAspectRatio("1:1")
	if square.IsOriginal() {
		t.Fatalf("1:1 must not be treated as the Original sentinel")
	}
	o := domain.Dimensions{Width: 1200, Height: 400}
	if got := ComputeTargetDimensions(o, original, original.IsOriginal()); got != o {
		t.Fatalf("Original selection = %+v, want %+v", got, o)
	}
}

func TestComputeTargetDimensionsPreservesOneSideAndRatio(t *testing.T) {
	originals := []domain.Dimensions{
		{Width: 1000, Height: 500},
		{Width: 500, Height: 1000},
		{Width: 512, Height: 512},
		{Width: 1920, Height: 1080},
		{Width: 37, Height: 91},
		{Width: 3000, Height: 2999},
	}
	for _, o := range originals {
		for _, option := range AspectRatios() {
			if option.IsOriginal() {
				continue
			}
			got := ComputeTargetDimensions(o, option, false)
			if got.Width != o.Width && got.Height != o.Height {
				t.Fatalf("%+v -> %s = %+v: neither side preserved", o, option.Label, got)
			}
			if got.Width < o.Width || got.Height < o.Height {
				t.Fatalf("%+v -> %s = %+v: original content shrunk", o, option.Label, got)
			}
			want := float64(option.RatioW) / float64(option.RatioH)
			// One side is rounded, so the ratio may be off by half a pixel on
			// the computed side.
			var tol float64
			if got.Width == o.Width {
				tol = want * 0.5 / float64(got.Height) * 1.01
			} else {
				tol = 0.5 / float64(got.Height) * 1.01
			}
			ratio := float64(got.Width) / float64(got.Height)
			if math.Abs(ratio-want) > tol {
				t.Fatalf("%+v -> %s = %+v: ratio %.5f, want %.5f (tol %.5f)", o, option.Label, got, ratio, want, tol)
			}
		}
	}
}

func TestComputeTargetDimensionsClampsDegenerateInput(t *testing.T) {
	option, _ := LookupAspectRatio("16:9")
	got := ComputeTargetDimensions(domain.Dimensions{Width: 0, Height: 0}, option, false)
	if got.Width < 1 || got.Height < 1 {
		t.Fatalf("ComputeTargetDimensions(0x0) = %+v, want positive", got)
	}

	bad := AspectRatioOption{Label: "bad", RatioW: 4, RatioH: 0}
	got = ComputeTargetDimensions(domain.Dimensions{Width: 300, Height: 200}, bad, false)
	if got != (domain.Dimensions{Width: 300, Height: 200}) {
		t.Fatalf("zero ratio height = %+v, want original", got)
	}
}

func TestAspectRatioCatalog(t *testing.T) {
	want := []string{"Original", "1:1", "2:3", "3:2", "4:3", "3:4", "5:4", "4:5", "16:9", "9:16"}
	got := AspectRatios()
	if len(got) != len(want) {
		t.Fatalf("len(AspectRatios()) = %d, want %d", len(got), len(want))
	}
	for i, label := range want {
		if got[i].Label != label {
			t.Fatalf("AspectRatios()[%d] = %q, want %q", i, got[i].Label, label)
		}
	}

	got[0].Label = "mutated"
	if AspectRatios()[0].Label != OriginalLabel {
		t.Fatalf("AspectRatios must return a copy")
	}

	if _, err := LookupAspectRatio("7:3"); !errors.Is(err, domain.ErrUnknownAspectRatio) {
		t.Fatalf("LookupAspectRatio(7:3) error = %v, want ErrUnknownAspectRatio", err)
	}
	if o, err := LookupAspectRatio(" original "); err != nil || !o.IsOriginal() {
		t.Fatalf("LookupAspectRatio is expected to trim and ignore case, got %+v, %v", o, err)
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "512", want: 512},
		{in: "  640 ", want: 640},
		{in: "", want: 0},
		{in: "abc", want: 0},
		{in: "12px", want: 12},
		{in: "-40", want: -40},
		{in: "+7", want: 7},
		{in: "3.9", want: 3},
		{in: "-", want: 0},
		{in: "99999999999999999999", want: math.MaxInt32},
	}
	for _, tc := range tests {
		if got := ParseDimension(tc.in); got != tc.want {
			t.Fatalf("ParseDimension(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
