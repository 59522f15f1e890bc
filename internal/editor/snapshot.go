package editor

import "imagestudio/internal/domain"

// Snapshot is the serialisable view of a session that the UI renders from.
type Snapshot struct {
	ID               string            `json:"id"`
	Image            domain.ImageRef   `json:"image"`
	SelectedRatio    string            `json:"selected_ratio"`
	Original         domain.Dimensions `json:"original_dimensions"`
	OriginalResolved bool              `json:"original_resolved"`
	Target           domain.Dimensions `json:"target_dimensions"`
	CustomWidth      int               `json:"custom_width"`
	CustomHeight     int               `json:"custom_height"`
	ActivePanel      Panel             `json:"active_panel"`
	Geometry         PreviewGeometry   `json:"geometry"`
	Mask             MaskSnapshot      `json:"mask"`
	BrushSize        int               `json:"brush_size"`
	FillPrompt       string            `json:"fill_prompt"`
	CanErase         bool              `json:"can_erase"`
	CanGenerate      bool              `json:"can_generate"`
}

// MaskSnapshot is the recorder part of a Snapshot.
type MaskSnapshot struct {
	State        RecorderState   `json:"state"`
	Masking      bool            `json:"masking"`
	Strokes      []domain.Stroke `json:"strokes"`
	ActiveStroke domain.Stroke   `json:"active_stroke,omitempty"`
	Cursor       Cursor          `json:"cursor"`
}

// Snapshot captures the recorder state.
func (r *Recorder) Snapshot() MaskSnapshot {
	return MaskSnapshot{
		State:        r.State(),
		Masking:      r.masking,
		Strokes:      r.Strokes(),
		ActiveStroke: r.ActiveStroke(),
		Cursor:       r.Cursor(),
	}
}

// Snapshot captures the whole session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:               s.ID,
		Image:            s.Image,
		SelectedRatio:    s.selectedRatio.Label,
		Original:         s.original,
		OriginalResolved: s.originalResolved,
		Target:           s.target,
		CustomWidth:      s.customWidth,
		CustomHeight:     s.customHeight,
		ActivePanel:      s.activePanel,
		Geometry:         s.Geometry(),
		Mask:             s.recorder.Snapshot(),
		BrushSize:        s.brushSize,
		FillPrompt:       s.fillPrompt,
		CanErase:         s.CanErase(),
		CanGenerate:      s.CanGenerate(),
	}
}
