package gallery

import (
	"errors"
	"strings"
	"testing"
	"time"

	"imagestudio/internal/domain"
)

func newSeeded() *Gallery {
	return New(SeedItems(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSeedItems(t *testing.T) {
	g := newSeeded()
	items := g.List()
	if len(items) != 7 {
		t.Fatalf("seeded %d items, want 7", len(items))
	}
	if items[0].Alt != "Mountain sunset landscape" || items[6].Src != "gallery/gallery-arctic.jpg" {
		t.Fatalf("unexpected seed: first=%+v last=%+v", items[0], items[6])
	}
	for _, it := range items {
		if it.Status != domain.ImageStatusReady {
			t.Fatalf("seed item %d status = %s", it.ID, it.Status)
		}
	}
}

func TestNeighborsWrapAround(t *testing.T) {
	g := newSeeded()
	tests := []struct {
		id, prev, next int
	}{
		{id: 1, prev: 7, next: 2},
		{id: 4, prev: 3, next: 5},
		{id: 7, prev: 6, next: 1},
	}
	for _, tc := range tests {
		prev, next, err := g.Neighbors(tc.id)
		if err != nil {
			t.Fatalf("Neighbors(%d): %v", tc.id, err)
		}
		if prev.ID != tc.prev || next.ID != tc.next {
			t.Fatalf("Neighbors(%d) = %d,%d; want %d,%d", tc.id, prev.ID, next.ID, tc.prev, tc.next)
		}
	}
	if _, _, err := g.Neighbors(99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Neighbors(99) error = %v, want ErrNotFound", err)
	}
}

func TestPlaceholderLifecycle(t *testing.T) {
	g := newSeeded()
	form, err := GenerationForm{Prompt: "neon city", AspectRatio: AspectLandscape}.Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	ph := g.AddPlaceholder(form, "job-1")
	if ph.ID != 8 || ph.Status != domain.ImageStatusPending {
		t.Fatalf("placeholder = %+v", ph)
	}
	if g.List()[0].ID != ph.ID {
		t.Fatalf("placeholder not at the head of the gallery")
	}
	if ph.Width != 1024 || ph.Height != 576 {
		t.Fatalf("placeholder size = %dx%d, want 1024x576", ph.Width, ph.Height)
	}
	if _, err := g.DownloadRequest(ph.ID); !errors.Is(err, domain.ErrImagePending) {
		t.Fatalf("DownloadRequest(pending) error = %v, want ErrImagePending", err)
	}

	asset := ResultAsset(form.Prompt)
	done, err := g.Complete(ph.ID, asset)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.Status != domain.ImageStatusReady || !strings.HasPrefix(done.Src, SeedKeyPrefix) {
		t.Fatalf("completed item = %+v", done)
	}
	if done.Width != asset.Size.Width || done.Height != asset.Size.Height {
		t.Fatalf("completed size = %dx%d, want asset size %+v", done.Width, done.Height, asset.Size)
	}
	if g.Len() != 8 || g.List()[0].ID != ph.ID {
		t.Fatalf("completion changed gallery order")
	}
}

func TestDownloadAndCopyPrompt(t *testing.T) {
	g := newSeeded()
	dl, err := g.DownloadRequest(3)
	if err != nil {
		t.Fatalf("DownloadRequest: %v", err)
	}
	if dl.Filename != "image-3.jpg" || dl.Src != "gallery/gallery-renewable.jpg" {
		t.Fatalf("DownloadRequest = %+v", dl)
	}

	if _, err := g.CopyPrompt(3); !errors.Is(err, domain.ErrNoPrompt) {
		t.Fatalf("CopyPrompt(no prompt) error = %v, want ErrNoPrompt", err)
	}
	ph := g.AddPlaceholder(GenerationForm{Prompt: "glacier at dawn", AspectRatio: AspectSquare}, "job")
	clip, err := g.CopyPrompt(ph.ID)
	if err != nil || clip.Text != "glacier at dawn" {
		t.Fatalf("CopyPrompt = %+v, %v", clip, err)
	}
}

func TestDetailsDefaults(t *testing.T) {
	g := newSeeded()
	item, err := g.Details(2)
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if item.AspectRatio != "Square" || item.Quality != "Basic" || item.Model != "Model C" {
		t.Fatalf("Details defaults = %+v", item)
	}
	if item.Description() != "Anime fairy character" {
		t.Fatalf("Description() = %q, want alt text", item.Description())
	}
}

func TestResultAssetIsStable(t *testing.T) {
	if ResultAsset("forest") != ResultAsset("forest") {
		t.Fatalf("ResultAsset not deterministic")
	}
	seeds := SeedItems(time.Time{})
	for _, prompt := range []string{"forest", "aurora over fjords", "a red balloon", "x"} {
		asset := ResultAsset(prompt)
		found := false
		for _, item := range seeds {
			if item.Src == asset.Src {
				found = true
				if asset.Size != (domain.Dimensions{Width: item.Width, Height: item.Height}) {
					t.Fatalf("ResultAsset(%q) size = %+v, want seed size %dx%d", prompt, asset.Size, item.Width, item.Height)
				}
			}
		}
		if !found {
			t.Fatalf("ResultAsset(%q) = %q, not a seed asset", prompt, asset.Src)
		}
	}
}

func TestAttachJobAndRemove(t *testing.T) {
	g := newSeeded()
	ph := g.AddPlaceholder(DefaultForm(), "")
	if err := g.AttachJob(ph.ID, "job-9"); err != nil {
		t.Fatalf("AttachJob: %v", err)
	}
	if item, _ := g.Get(ph.ID); item.JobID != "job-9" {
		t.Fatalf("JobID = %q, want job-9", item.JobID)
	}
	if !g.Remove(ph.ID) || g.Len() != 7 {
		t.Fatalf("Remove did not drop the placeholder")
	}
	if g.Remove(ph.ID) {
		t.Fatalf("Remove of a missing id returned true")
	}
	if err := g.AttachJob(ph.ID, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("AttachJob(missing) error = %v, want ErrNotFound", err)
	}
}
