package editor

import (
	"math"
	"strings"

	"imagestudio/internal/domain"
)

// OriginalLabel identifies the catalog entry that keeps the image's own size.
const OriginalLabel = "Original"

// AspectRatioOption is one entry of the aspect-ratio picker.
type AspectRatioOption struct {
	Label  string `json:"label"`
	RatioW int    `json:"ratio_w"`
	RatioH int    `json:"ratio_h"`
}

// IsOriginal reports whether o is the "Original" sentinel. The sentinel is
// stored as 1:1 and must be recognised by label, never by its ratio.
func (o AspectRatioOption) IsOriginal() bool {
	return o.Label == OriginalLabel
}

var aspectRatios = []AspectRatioOption{
	{Label: OriginalLabel, RatioW: 1, RatioH: 1},
	{Label: "1:1", RatioW: 1, RatioH: 1},
	{Label: "2:3", RatioW: 2, RatioH: 3},
	{Label: "3:2", RatioW: 3, RatioH: 2},
	{Label: "4:3", RatioW: 4, RatioH: 3},
	{Label: "3:4", RatioW: 3, RatioH: 4},
	{Label: "5:4", RatioW: 5, RatioH: 4},
	{Label: "4:5", RatioW: 4, RatioH: 5},
	{Label: "16:9", RatioW: 16, RatioH: 9},
	{Label: "9:16", RatioW: 9, RatioH: 16},
}

// AspectRatios returns a copy of the fixed catalog in display order.
func AspectRatios() []AspectRatioOption {
	out := make([]AspectRatioOption, len(aspectRatios))
	copy(out, aspectRatios)
	return out
}

// LookupAspectRatio finds a catalog entry by label.
func LookupAspectRatio(label string) (AspectRatioOption, error) {
	label = strings.TrimSpace(label)
	for _, o := range aspectRatios {
		if strings.EqualFold(o.Label, label) {
			return o, nil
		}
	}
	return AspectRatioOption{}, domain.ErrUnknownAspectRatio
}

// ComputeTargetDimensions extends the original canvas along one axis until it
// reaches the option's aspect ratio. The original content is never shrunk:
// wider targets keep the height, taller or equal targets keep the width.
func ComputeTargetDimensions(original domain.Dimensions, option AspectRatioOption, isOriginalSelected bool) domain.Dimensions {
	if isOriginalSelected {
		return original
	}
	orig := original.Clamped()
	if option.RatioW <= 0 || option.RatioH <= 0 {
		return orig
	}

	originalAspect := float64(orig.Width) / float64(orig.Height)
	targetAspect := float64(option.RatioW) / float64(option.RatioH)

	if targetAspect > originalAspect {
		return domain.Dimensions{
			Width:  int(math.Round(float64(orig.Height) * targetAspect)),
			Height: orig.Height,
		}
	}
	return domain.Dimensions{
		Width:  orig.Width,
		Height: int(math.Round(float64(orig.Width) / targetAspect)),
	}
}

// ParseDimension coerces text typed into a size field. It reads an optional
// sign and the leading run of digits; anything unparsable becomes 0.
func ParseDimension(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (math.MaxInt32-9)/10 {
			n = math.MaxInt32
			digits++
			break
		}
		n = n*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
