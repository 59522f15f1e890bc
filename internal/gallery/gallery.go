// Package gallery holds the result gallery and the prompt form that feeds it.
package gallery

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"imagestudio/internal/domain"
)

// Defaults shown in the preview dialog when an item carries no metadata.
const (
	DefaultAspectRatio = "Square"
	DefaultQuality     = "Basic"
	DefaultModel       = "Model C"
)

type seedImage struct {
	file string
	alt  string
	size domain.Dimensions
}

var seedImages = []seedImage{
	{file: "gallery-sunset.jpg", alt: "Mountain sunset landscape", size: domain.Dimensions{Width: 1024, Height: 576}},
	{file: "gallery-fairy.jpg", alt: "Anime fairy character", size: domain.Dimensions{Width: 768, Height: 1024}},
	{file: "gallery-renewable.jpg", alt: "Renewable energy technology", size: domain.Dimensions{Width: 1024, Height: 768}},
	{file: "gallery-scientists.jpg", alt: "Environmental research", size: domain.Dimensions{Width: 1024, Height: 1024}},
	{file: "gallery-earth.jpg", alt: "Environmental protection", size: domain.Dimensions{Width: 1024, Height: 1024}},
	{file: "gallery-climate.jpg", alt: "Climate data visualization", size: domain.Dimensions{Width: 1280, Height: 720}},
	{file: "gallery-arctic.jpg", alt: "Arctic glaciers", size: domain.Dimensions{Width: 1024, Height: 683}},
}

// SeedKeyPrefix is the storage directory holding the bundled gallery assets.
const SeedKeyPrefix = "gallery/"

// SeedItems returns the static gallery with ids 1..7.
func SeedItems(now time.Time) []domain.ImageRef {
	out := make([]domain.ImageRef, 0, len(seedImages))
	for i, s := range seedImages {
		out = append(out, domain.ImageRef{
			ID:        i + 1,
			Src:       SeedKeyPrefix + s.file,
			Alt:       s.alt,
			Width:     s.size.Width,
			Height:    s.size.Height,
			Status:    domain.ImageStatusReady,
			CreatedAt: now,
		})
	}
	return out
}

// Gallery is the ordered list of images, newest first. Safe for concurrent
// use; generation results arrive on timer goroutines.
type Gallery struct {
	mu     sync.RWMutex
	items  []domain.ImageRef
	nextID int
	now    func() time.Time
}

func New(items []domain.ImageRef) *Gallery {
	g := &Gallery{now: func() time.Time { return time.Now().UTC() }}
	for _, it := range items {
		if it.ID >= g.nextID {
			g.nextID = it.ID + 1
		}
	}
	if g.nextID == 0 {
		g.nextID = 1
	}
	g.items = append([]domain.ImageRef(nil), items...)
	return g
}

func (g *Gallery) List() []domain.ImageRef {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]domain.ImageRef(nil), g.items...)
}

func (g *Gallery) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.items)
}

func (g *Gallery) Get(id int) (domain.ImageRef, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i := g.indexOf(id)
	if i < 0 {
		return domain.ImageRef{}, domain.ErrNotFound
	}
	return g.items[i], nil
}

// Neighbors returns the items before and after id, wrapping around the ends
// the way the preview dialog arrows do.
func (g *Gallery) Neighbors(id int) (prev, next domain.ImageRef, err error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	i := g.indexOf(id)
	if i < 0 {
		return domain.ImageRef{}, domain.ImageRef{}, domain.ErrNotFound
	}
	n := len(g.items)
	return g.items[(i-1+n)%n], g.items[(i+1)%n], nil
}

// AddPlaceholder inserts a pending item for a queued generation at the head
// of the gallery.
func (g *Gallery) AddPlaceholder(form GenerationForm, jobID string) domain.ImageRef {
	g.mu.Lock()
	defer g.mu.Unlock()
	size := form.AspectRatio.Dimensions()
	item := domain.ImageRef{
		ID:          g.nextID,
		Alt:         form.Prompt,
		Prompt:      form.Prompt,
		AspectRatio: string(form.AspectRatio),
		Quality:     DefaultQuality,
		Model:       DefaultModel,
		Width:       size.Width,
		Height:      size.Height,
		Status:      domain.ImageStatusPending,
		JobID:       jobID,
		CreatedAt:   g.now(),
	}
	g.nextID++
	g.items = append([]domain.ImageRef{item}, g.items...)
	return item
}

// Replace swaps the item with the given id for item, keeping its position
// and id.
func (g *Gallery) Replace(id int, item domain.ImageRef) (domain.ImageRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return domain.ImageRef{}, domain.ErrNotFound
	}
	item.ID = id
	if item.CreatedAt.IsZero() {
		item.CreatedAt = g.items[i].CreatedAt
	}
	g.items[i] = item
	return item, nil
}

// AttachJob records the generation job that will fill a placeholder.
func (g *Gallery) AttachJob(id int, jobID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	g.items[i].JobID = jobID
	return nil
}

// Complete marks a pending placeholder as ready and points it at asset,
// taking on the asset's size.
func (g *Gallery) Complete(id int, asset Asset) (domain.ImageRef, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return domain.ImageRef{}, domain.ErrNotFound
	}
	g.items[i].Src = asset.Src
	g.items[i].Width, g.items[i].Height = asset.Size.Width, asset.Size.Height
	g.items[i].Status = domain.ImageStatusReady
	return g.items[i], nil
}

// Remove deletes an item, e.g. a placeholder whose job could not be queued.
func (g *Gallery) Remove(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.indexOf(id)
	if i < 0 {
		return false
	}
	g.items = append(g.items[:i], g.items[i+1:]...)
	return true
}

// Details returns the item with preview-dialog defaults applied.
func (g *Gallery) Details(id int) (domain.ImageRef, error) {
	item, err := g.Get(id)
	if err != nil {
		return domain.ImageRef{}, err
	}
	return WithPreviewDefaults(item), nil
}

// DownloadRequest builds the browser download for an item.
func (g *Gallery) DownloadRequest(id int) (domain.DownloadRequest, error) {
	item, err := g.Get(id)
	if err != nil {
		return domain.DownloadRequest{}, err
	}
	if item.Status == domain.ImageStatusPending || item.Src == "" {
		return domain.DownloadRequest{}, domain.ErrImagePending
	}
	return domain.DownloadRequest{Src: item.Src, Filename: DownloadFilename(id)}, nil
}

// CopyPrompt returns the clipboard payload for an item's prompt.
func (g *Gallery) CopyPrompt(id int) (domain.ClipboardRequest, error) {
	item, err := g.Get(id)
	if err != nil {
		return domain.ClipboardRequest{}, err
	}
	if item.Prompt == "" {
		return domain.ClipboardRequest{}, domain.ErrNoPrompt
	}
	return domain.ClipboardRequest{Text: item.Prompt}, nil
}

func (g *Gallery) indexOf(id int) int {
	for i, it := range g.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// WithPreviewDefaults fills missing preview metadata.
func WithPreviewDefaults(item domain.ImageRef) domain.ImageRef {
	if item.AspectRatio == "" {
		item.AspectRatio = DefaultAspectRatio
	}
	if item.Quality == "" {
		item.Quality = DefaultQuality
	}
	if item.Model == "" {
		item.Model = DefaultModel
	}
	return item
}

func DownloadFilename(id int) string {
	return "image-" + strconv.Itoa(id) + ".jpg"
}

// Asset is a stored image and its intrinsic size.
type Asset struct {
	Src  string
	Size domain.Dimensions
}

// ResultAsset picks the static asset a simulated generation resolves to. The
// same prompt always yields the same asset.
func ResultAsset(prompt string) Asset {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	seed := seedImages[h.Sum32()%uint32(len(seedImages))]
	return Asset{Src: fmt.Sprintf("%s%s", SeedKeyPrefix, seed.file), Size: seed.size}
}
