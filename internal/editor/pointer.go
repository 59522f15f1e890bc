package editor

import (
	"fmt"
	"strings"

	"imagestudio/internal/domain"
)

// PointerKind is the type of a pointer event sent by the client.
type PointerKind string

const (
	PointerDown  PointerKind = "down"
	PointerMove  PointerKind = "move"
	PointerUp    PointerKind = "up"
	PointerLeave PointerKind = "leave"
)

// PointerEvent is one mouse event in client coordinates. Origin, when set,
// moves the canvas before the event is applied.
type PointerEvent struct {
	Kind   PointerKind   `json:"type"`
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Origin *domain.Point `json:"origin,omitempty"`
}

// ApplyPointer feeds ev to the session's mask recorder.
func (s *Session) ApplyPointer(ev PointerEvent) error {
	if ev.Origin != nil {
		s.SetCanvasOrigin(*ev.Origin)
	}
	p := domain.Point{X: ev.X, Y: ev.Y}
	switch PointerKind(strings.ToLower(string(ev.Kind))) {
	case PointerDown:
		s.recorder.PointerDown(p)
	case PointerMove:
		s.recorder.PointerMove(p)
	case PointerUp:
		s.recorder.PointerUp()
	case PointerLeave:
		s.recorder.PointerLeave()
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidPointerEvent, ev.Kind)
	}
	return nil
}
