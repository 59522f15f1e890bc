package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"imagestudio/internal/domain"
	"imagestudio/internal/gallery"
	"imagestudio/pkg/zip"
)

func (a *App) ListGallery(w http.ResponseWriter, r *http.Request) {
	items := a.Gallery.List()
	out := make([]imageView, 0, len(items))
	for _, it := range items {
		out = append(out, a.view(it))
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := a.imageID(w, r)
	if !ok {
		return
	}
	item, err := a.Gallery.Details(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"image":       a.view(item),
		"description": item.Description(),
	})
}

func (a *App) GalleryNeighbors(w http.ResponseWriter, r *http.Request) {
	id, ok := a.imageID(w, r)
	if !ok {
		return
	}
	prev, next, err := a.Gallery.Neighbors(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"previous": a.view(prev), "next": a.view(next)})
}

func (a *App) DownloadGalleryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := a.imageID(w, r)
	if !ok {
		return
	}
	req, err := a.Gallery.DownloadRequest(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	data, err := a.Files.Read(r.Context(), req.Src)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", req.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *App) CopyGalleryPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := a.imageID(w, r)
	if !ok {
		return
	}
	clip, err := a.Gallery.CopyPrompt(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, clip)
}

// GalleryBundle zips the asset with a JSON sidecar describing it.
func (a *App) GalleryBundle(w http.ResponseWriter, r *http.Request) {
	id, ok := a.imageID(w, r)
	if !ok {
		return
	}
	req, err := a.Gallery.DownloadRequest(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	item, err := a.Gallery.Details(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	data, err := a.Files.Read(r.Context(), req.Src)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	meta, err := json.MarshalIndent(map[string]any{
		"id":           item.ID,
		"alt":          item.Alt,
		"prompt":       item.Prompt,
		"description":  item.Description(),
		"aspect_ratio": item.AspectRatio,
		"quality":      item.Quality,
		"model":        item.Model,
		"source":       item.Src,
	}, "", "  ")
	if err != nil {
		a.fail(w, r, fmt.Errorf("encode bundle metadata: %w", err))
		return
	}

	base := strings.TrimSuffix(req.Filename, path.Ext(req.Filename))
	archive, err := zip.ArchiveAssets([]zip.Asset{
		{Filename: req.Filename, MIME: http.DetectContentType(data), Data: data, Modified: item.CreatedAt},
		{Filename: base + ".json", MIME: "application/json", Data: meta, Modified: item.CreatedAt},
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", base))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

type generateResponse struct {
	Job   *domain.Job `json:"job"`
	Image imageView   `json:"image"`
}

// Generate queues a simulated text-to-image job. A pending placeholder is
// shown at the head of the gallery until the job completes.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var form gallery.GenerationForm
	if !a.decode(w, r, &form) {
		return
	}
	form, err := form.Validate()
	if err != nil {
		a.fail(w, r, err)
		return
	}

	placeholder := a.Gallery.AddPlaceholder(form, "")
	job, err := a.Generator.Submit(r.Context(), domain.JobTypeGenerate, form, func(domain.Job) (any, error) {
		return a.Gallery.Complete(placeholder.ID, gallery.ResultAsset(form.Prompt))
	})
	if err != nil {
		a.Gallery.Remove(placeholder.ID)
		a.fail(w, r, err)
		return
	}
	_ = a.Gallery.AttachJob(placeholder.ID, job.ID)
	placeholder.JobID = job.ID
	a.json(w, http.StatusAccepted, generateResponse{Job: job, Image: a.view(placeholder)})
}
