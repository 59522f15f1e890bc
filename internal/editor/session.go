package editor

import (
	"fmt"
	"strings"
	"time"

	"imagestudio/internal/domain"
)

// Panel identifies the expanded section of the editor sidebar. Only one can
// be open at a time.
type Panel int

const (
	PanelNone Panel = iota
	PanelAspectRatio
	PanelCustomSize
	PanelContentEditing
)

func (p Panel) String() string {
	switch p {
	case PanelAspectRatio:
		return "aspect_ratio"
	case PanelCustomSize:
		return "custom_size"
	case PanelContentEditing:
		return "content_editing"
	default:
		return "none"
	}
}

// MarshalText encodes the panel by name.
func (p Panel) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ParsePanel resolves a panel name.
func ParsePanel(s string) (Panel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return PanelNone, nil
	case "aspect_ratio":
		return PanelAspectRatio, nil
	case "custom_size":
		return PanelCustomSize, nil
	case "content_editing":
		return PanelContentEditing, nil
	}
	return PanelNone, fmt.Errorf("unknown panel %q", s)
}

const (
	// PlaceholderSize stands in for the original dimensions until the image
	// has been probed.
	PlaceholderSize = 512

	DefaultBrushSize = 40
	MinBrushSize     = 5
	MaxBrushSize     = 100
)

// Session is the state of one open editor dialog.
type Session struct {
	ID        string
	Image     domain.ImageRef
	CreatedAt time.Time

	selectedRatio    AspectRatioOption
	original         domain.Dimensions
	originalResolved bool
	target           domain.Dimensions
	customWidth      int
	customHeight     int
	activePanel      Panel
	brushSize        int
	fillPrompt       string
	maxPreview       float64

	recorder *Recorder
}

// NewSession opens the editor for image. The aspect-ratio panel starts
// expanded with "Original" selected, and a placeholder size is used until
// ResolveOriginal is called.
func NewSession(id string, image domain.ImageRef, maxPreview float64) *Session {
	if maxPreview <= 0 {
		maxPreview = DefaultMaxPreview
	}
	placeholder := domain.Dimensions{Width: PlaceholderSize, Height: PlaceholderSize}
	s := &Session{
		ID:            id,
		Image:         image,
		CreatedAt:     time.Now().UTC(),
		selectedRatio: aspectRatios[0],
		original:      placeholder,
		target:        placeholder,
		customWidth:   placeholder.Width,
		customHeight:  placeholder.Height,
		activePanel:   PanelAspectRatio,
		brushSize:     DefaultBrushSize,
		maxPreview:    maxPreview,
	}
	g := s.Geometry()
	s.recorder = NewRecorder(g.CanvasW, g.CanvasH)
	return s
}

// ResolveOriginal records the image's intrinsic size. It may only happen
// once per opened image.
func (s *Session) ResolveOriginal(d domain.Dimensions) error {
	if s.originalResolved {
		return domain.ErrOriginalResolved
	}
	d = d.Clamped()
	s.originalResolved = true
	s.reshape(d, ComputeTargetDimensions(d, s.selectedRatio, s.selectedRatio.IsOriginal()))
	s.customWidth, s.customHeight = s.target.Width, s.target.Height
	return nil
}

// OriginalResolved reports whether the intrinsic size is known.
func (s *Session) OriginalResolved() bool { return s.originalResolved }

// Original returns the original image dimensions.
func (s *Session) Original() domain.Dimensions { return s.original }

// Target returns the requested canvas dimensions.
func (s *Session) Target() domain.Dimensions { return s.target }

// SelectedRatio returns the highlighted catalog entry.
func (s *Session) SelectedRatio() AspectRatioOption { return s.selectedRatio }

// ActivePanel returns the expanded panel.
func (s *Session) ActivePanel() Panel { return s.activePanel }

// Recorder exposes the mask recorder for pointer events.
func (s *Session) Recorder() *Recorder { return s.recorder }

// BrushSize returns the brush diameter in preview pixels.
func (s *Session) BrushSize() int { return s.brushSize }

// FillPrompt returns the generative-fill prompt.
func (s *Session) FillPrompt() string { return s.fillPrompt }

// SelectRatio picks a catalog entry by label and recomputes the target.
func (s *Session) SelectRatio(label string) error {
	option, err := LookupAspectRatio(label)
	if err != nil {
		return err
	}
	s.selectedRatio = option
	target := ComputeTargetDimensions(s.original, option, option.IsOriginal())
	s.setTarget(target)
	s.customWidth, s.customHeight = s.target.Width, s.target.Height
	return nil
}

// SetCustomSize applies explicitly typed dimensions. The selected ratio is
// left untouched. The typed values are kept as entered, while the target is
// clamped to at least one pixel per side and fitted within MaxDimension.
func (s *Session) SetCustomSize(width, height int) {
	s.customWidth, s.customHeight = width, height
	s.setTarget(domain.Dimensions{Width: width, Height: height})
}

// CustomSize returns the values shown in the custom size fields.
func (s *Session) CustomSize() (int, int) { return s.customWidth, s.customHeight }

// TogglePanel opens p, closing any other panel, or collapses p when it is
// already open. Entering the content-editing panel resets the session to the
// original size with an empty mask and prompt.
func (s *Session) TogglePanel(p Panel) {
	if s.activePanel == p {
		s.activePanel = PanelNone
		return
	}
	s.activePanel = p
	if p == PanelContentEditing {
		s.resetContentEditing()
	}
}

// SetCanvasOrigin records where the preview canvas sits in the client's
// pointer coordinate space.
func (s *Session) SetCanvasOrigin(origin domain.Point) {
	g := s.Geometry()
	s.recorder.SetCanvas(origin, g.CanvasW, g.CanvasH)
}

// SetMasking toggles masking mode.
func (s *Session) SetMasking(on bool) { s.recorder.SetMasking(on) }

// SetBrushSize sets the brush diameter, clamped to the supported range.
func (s *Session) SetBrushSize(size int) {
	s.brushSize = max(MinBrushSize, min(MaxBrushSize, size))
}

// SetFillPrompt stores the generative-fill prompt.
func (s *Session) SetFillPrompt(prompt string) { s.fillPrompt = strings.TrimSpace(prompt) }

// ClearMask removes every stroke.
func (s *Session) ClearMask() { s.recorder.Clear() }

// CanErase reports whether the erase action is enabled.
func (s *Session) CanErase() bool { return s.recorder.StrokeCount() > 0 }

// CanGenerate reports whether the generative fill action is enabled.
func (s *Session) CanGenerate() bool { return s.CanErase() && s.fillPrompt != "" }

// Geometry projects the current target and original onto the preview.
func (s *Session) Geometry() PreviewGeometry {
	return ComputePreviewGeometry(s.target, s.original, s.maxPreview)
}

// ExpandRequest packages an outpainting request for the current target size.
// Expansion is driven from the aspect-ratio and custom-size panels.
func (s *Session) ExpandRequest() (domain.ExpandRequest, error) {
	if s.activePanel != PanelAspectRatio && s.activePanel != PanelCustomSize {
		return domain.ExpandRequest{}, domain.ErrPanelClosed
	}
	return domain.ExpandRequest{
		TargetDimensions: s.target,
		OriginalImage:    s.Image,
	}, nil
}

// EraseRequest packages the mask for object removal.
func (s *Session) EraseRequest() (domain.ExpandRequest, error) {
	if !s.CanErase() {
		return domain.ExpandRequest{}, domain.ErrMaskEmpty
	}
	return domain.ExpandRequest{
		TargetDimensions: s.target,
		OriginalImage:    s.Image,
		MaskPaths:        s.recorder.Strokes(),
	}, nil
}

// GenerateRequest packages the mask and prompt for generative fill.
func (s *Session) GenerateRequest() (domain.ExpandRequest, error) {
	if !s.CanErase() {
		return domain.ExpandRequest{}, domain.ErrMaskEmpty
	}
	if s.fillPrompt == "" {
		return domain.ExpandRequest{}, domain.ErrPromptRequired
	}
	return domain.ExpandRequest{
		TargetDimensions: s.target,
		OriginalImage:    s.Image,
		MaskPaths:        s.recorder.Strokes(),
		Prompt:           s.fillPrompt,
	}, nil
}

func (s *Session) resetContentEditing() {
	s.selectedRatio = aspectRatios[0]
	s.setTarget(s.original)
	s.customWidth, s.customHeight = s.original.Width, s.original.Height
	s.recorder.SetMasking(false)
	s.recorder.Clear()
	s.fillPrompt = ""
}

func (s *Session) setTarget(d domain.Dimensions) { s.reshape(s.original, d) }

// reshape swaps in new original and target sizes. Strokes already recorded
// are moved with the image so they keep covering the same content.
func (s *Session) reshape(original, target domain.Dimensions) {
	before := s.Geometry()
	s.original = original
	s.target = target.Fitted()
	if s.recorder == nil {
		return
	}
	after := s.Geometry()
	s.recorder.SetCanvas(s.recorder.origin, after.CanvasW, after.CanvasH)
	if after != before {
		s.recorder.Reproject(func(p domain.Point) domain.Point {
			return after.FromImage(before.ToImage(p))
		})
	}
}
