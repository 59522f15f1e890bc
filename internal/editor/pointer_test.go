package editor

import (
	"testing"

	"imagestudio/internal/domain"
)

func TestSessionApplyPointer(t *testing.T) {
	s := NewSession("p", domain.ImageRef{ID: 1}, 400)
	s.SetMasking(true)

	events := []PointerEvent{
		{Kind: PointerDown, X: 110, Y: 60, Origin: &domain.Point{X: 100, Y: 50}},
		{Kind: "MOVE", X: 120, Y: 70},
		{Kind: PointerMove, X: 130, Y: 80},
		{Kind: PointerUp},
	}
	for _, ev := range events {
		if err := s.ApplyPointer(ev); err != nil {
			t.Fatalf("ApplyPointer(%+v): %v", ev, err)
		}
	}
	strokes := s.Recorder().Strokes()
	if len(strokes) != 1 || len(strokes[0]) != 3 {
		t.Fatalf("strokes = %v, want one stroke of three points", strokes)
	}
	if strokes[0][0] != (domain.Point{X: 10, Y: 10}) {
		t.Fatalf("first point = %v, want canvas-local (10,10)", strokes[0][0])
	}
	if !s.CanErase() {
		t.Fatalf("CanErase() = false after drawing")
	}

	if err := s.ApplyPointer(PointerEvent{Kind: "wheel"}); err == nil {
		t.Fatalf("unknown event accepted")
	}
}
