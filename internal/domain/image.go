package domain

import (
	"math"
	"time"
)

// Dimensions is a pixel size, either an image's intrinsic size or a requested
// canvas size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Clamped returns d with both components raised to at least one pixel.
func (d Dimensions) Clamped() Dimensions {
	if d.Width < 1 {
		d.Width = 1
	}
	if d.Height < 1 {
		d.Height = 1
	}
	return d
}

// MaxDimension caps either side of a requested canvas.
const MaxDimension = 8192

// Fitted returns the clamped dimensions scaled down, keeping their aspect
// ratio, until neither side exceeds MaxDimension.
func (d Dimensions) Fitted() Dimensions {
	d = d.Clamped()
	longest := max(d.Width, d.Height)
	if longest <= MaxDimension {
		return d
	}
	f := float64(MaxDimension) / float64(longest)
	return Dimensions{
		Width:  int(math.Round(float64(d.Width) * f)),
		Height: int(math.Round(float64(d.Height) * f)),
	}.Clamped()
}

// Aspect returns width divided by height of the clamped dimensions.
func (d Dimensions) Aspect() float64 {
	c := d.Clamped()
	return float64(c.Width) / float64(c.Height)
}

// Point is a position in preview-pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pointer drag.
type Stroke []Point

// ImageStatus tracks whether a gallery item is still being generated.
type ImageStatus string

const (
	ImageStatusPending ImageStatus = "pending"
	ImageStatusReady   ImageStatus = "ready"
)

// ImageRef describes a gallery image. Src is a storage key relative to the
// static file store.
type ImageRef struct {
	ID          int         `json:"id"`
	Src         string      `json:"src"`
	Alt         string      `json:"alt"`
	Prompt      string      `json:"prompt,omitempty"`
	AspectRatio string      `json:"aspect_ratio,omitempty"`
	Quality     string      `json:"quality,omitempty"`
	Model       string      `json:"model,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	Status      ImageStatus `json:"status"`
	JobID       string      `json:"job_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Description returns the text shown in the preview dialog: the prompt when
// present, otherwise the alt text.
func (i ImageRef) Description() string {
	if i.Prompt != "" {
		return i.Prompt
	}
	return i.Alt
}

// ExpandRequest is handed to the generation collaborator when the editor
// expands, erases or fills an image.
type ExpandRequest struct {
	TargetDimensions Dimensions `json:"target_dimensions"`
	OriginalImage    ImageRef   `json:"original_image"`
	MaskPaths        []Stroke   `json:"mask_paths,omitempty"`
	Prompt           string     `json:"prompt,omitempty"`
}

// DownloadRequest asks the browser to save an existing asset.
type DownloadRequest struct {
	Src      string `json:"src"`
	Filename string `json:"filename"`
}

// ClipboardRequest carries text for the browser clipboard.
type ClipboardRequest struct {
	Text string `json:"text"`
}
