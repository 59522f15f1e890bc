package editor

import "imagestudio/internal/domain"

// RecorderState is the stroke-capture state.
type RecorderState int

const (
	StateIdle RecorderState = iota
	StateMaskingArmed
	StateDrawing
)

func (s RecorderState) String() string {
	switch s {
	case StateMaskingArmed:
		return "masking_armed"
	case StateDrawing:
		return "drawing"
	default:
		return "idle"
	}
}

// MarshalText encodes the state by name.
func (s RecorderState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cursor is the live brush cursor in canvas-local coordinates.
type Cursor struct {
	Position domain.Point `json:"position"`
	Visible  bool         `json:"visible"`
}

// Recorder turns pointer events over the preview canvas into mask strokes.
// Pointer positions are given in the caller's coordinate space; the canvas
// occupies [origin, origin+size] in that space, edges included, and points
// are stored relative to origin.
type Recorder struct {
	masking bool
	drawing bool

	origin domain.Point
	width  float64
	height float64

	strokes []domain.Stroke
	active  domain.Stroke

	cursor       domain.Point
	cursorInside bool
}

// NewRecorder creates a recorder for a canvas of the given preview size with
// its origin at (0, 0).
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// SetCanvas updates the canvas rectangle, e.g. after the preview geometry
// changes or the client reports a new page offset.
func (r *Recorder) SetCanvas(origin domain.Point, width, height float64) {
	r.origin = origin
	r.width = width
	r.height = height
}

// State returns the current capture state.
func (r *Recorder) State() RecorderState {
	switch {
	case r.drawing:
		return StateDrawing
	case r.masking:
		return StateMaskingArmed
	default:
		return StateIdle
	}
}

// Masking reports whether masking mode is on.
func (r *Recorder) Masking() bool { return r.masking }

// SetMasking toggles masking mode. Turning it off mid-drag commits the
// active stroke first; committed strokes are always kept.
func (r *Recorder) SetMasking(on bool) {
	if !on && r.drawing {
		r.commit()
	}
	r.masking = on
}

// PointerDown starts a stroke when masking is armed and p is on the canvas.
// It reports whether a stroke was started.
func (r *Recorder) PointerDown(p domain.Point) bool {
	local, inside := r.local(p)
	r.track(local, inside)
	if !r.masking || r.drawing || !inside {
		return false
	}
	r.drawing = true
	r.active = domain.Stroke{local}
	return true
}

// PointerMove tracks the cursor and extends the active stroke. Leaving the
// canvas while drawing ends the stroke.
func (r *Recorder) PointerMove(p domain.Point) {
	local, inside := r.local(p)
	if !inside {
		r.PointerLeave()
		return
	}
	r.track(local, inside)
	if r.drawing {
		r.active = append(r.active, local)
	}
}

// PointerUp ends the active stroke.
func (r *Recorder) PointerUp() {
	if r.drawing {
		r.commit()
	}
}

// PointerLeave ends the active stroke and hides the cursor.
func (r *Recorder) PointerLeave() {
	r.cursorInside = false
	if r.drawing {
		r.commit()
	}
}

// Clear removes every committed stroke and any stroke in progress.
func (r *Recorder) Clear() {
	r.strokes = nil
	r.active = nil
	r.drawing = false
}

// Reproject maps every recorded point, in committed strokes and the stroke in
// progress, through fn. The cursor is moved the same way.
func (r *Recorder) Reproject(fn func(domain.Point) domain.Point) {
	for _, stroke := range r.strokes {
		for i := range stroke {
			stroke[i] = fn(stroke[i])
		}
	}
	for i := range r.active {
		r.active[i] = fn(r.active[i])
	}
	r.cursor = fn(r.cursor)
}

// Strokes returns a copy of the committed strokes in render order.
func (r *Recorder) Strokes() []domain.Stroke {
	out := make([]domain.Stroke, len(r.strokes))
	for i, s := range r.strokes {
		out[i] = append(domain.Stroke(nil), s...)
	}
	return out
}

// StrokeCount returns the number of committed strokes.
func (r *Recorder) StrokeCount() int { return len(r.strokes) }

// ActiveStroke returns a copy of the stroke being drawn, or nil.
func (r *Recorder) ActiveStroke() domain.Stroke {
	if len(r.active) == 0 {
		return nil
	}
	return append(domain.Stroke(nil), r.active...)
}

// Cursor returns the brush cursor; it is visible only while masking with the
// pointer over the canvas.
func (r *Recorder) Cursor() Cursor {
	return Cursor{Position: r.cursor, Visible: r.masking && r.cursorInside}
}

func (r *Recorder) commit() {
	if len(r.active) > 0 {
		r.strokes = append(r.strokes, r.active)
	}
	r.active = nil
	r.drawing = false
}

func (r *Recorder) track(local domain.Point, inside bool) {
	r.cursor = local
	r.cursorInside = inside
}

func (r *Recorder) local(p domain.Point) (domain.Point, bool) {
	local := domain.Point{X: p.X - r.origin.X, Y: p.Y - r.origin.Y}
	inside := local.X >= 0 && local.Y >= 0 && local.X <= r.width && local.Y <= r.height
	return local, inside
}
