package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
	"imagestudio/internal/generation"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/render"
)

type createSessionRequest struct {
	ImageID int `json:"image_id"`
}

// CreateSession opens the editor on a gallery image. The intrinsic size is
// probed from the stored asset; when that fails the placeholder size stays.
func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if !a.decode(w, r, &req) {
		return
	}
	item, err := a.Gallery.Get(req.ImageID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if item.Status == domain.ImageStatusPending {
		a.fail(w, r, domain.ErrImagePending)
		return
	}

	session := editor.NewSession(a.newID(), item, a.Config.PreviewMaxSize)
	if src, err := a.loadSource(r.Context(), item); err != nil {
		a.Logger.Warn().Err(err).Int("image_id", item.ID).Msg("probe original dimensions")
	} else if err := session.ResolveOriginal(src.Dimensions()); err != nil {
		a.fail(w, r, err)
		return
	}
	a.Sessions.Put(session)
	a.json(w, http.StatusCreated, session.Snapshot())
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Sessions.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, snap)
}

func (a *App) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if !a.Sessions.Delete(chi.URLParam(r, "id")) {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// mutate applies fn to the session named in the URL and replies with the
// resulting snapshot.
func (a *App) mutate(w http.ResponseWriter, r *http.Request, fn func(*editor.Session) error) {
	var snap editor.Snapshot
	err := a.Sessions.Update(chi.URLParam(r, "id"), func(s *editor.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, snap)
}

func (a *App) SelectRatio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.mutate(w, r, func(s *editor.Session) error { return s.SelectRatio(req.Label) })
}

// dimensionField accepts the raw text of a size input, either as a JSON
// string or a number, and coerces it like a browser number field.
type dimensionField int

func (d *dimensionField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = dimensionField(editor.ParseDimension(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = dimensionField(editor.ParseDimension(strconv.FormatFloat(f, 'f', -1, 64)))
		return nil
	}
	*d = 0
	return nil
}

func (a *App) SetCustomSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width  dimensionField `json:"width"`
		Height dimensionField `json:"height"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.mutate(w, r, func(s *editor.Session) error {
		s.SetCustomSize(int(req.Width), int(req.Height))
		return nil
	})
}

func (a *App) TogglePanel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Panel string `json:"panel"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	panel, err := editor.ParsePanel(req.Panel)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	a.mutate(w, r, func(s *editor.Session) error {
		s.TogglePanel(panel)
		return nil
	})
}

func (a *App) SetMasking(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.mutate(w, r, func(s *editor.Session) error {
		s.SetMasking(req.Enabled)
		return nil
	})
}

func (a *App) SetBrush(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Size int `json:"size"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.mutate(w, r, func(s *editor.Session) error {
		s.SetBrushSize(req.Size)
		return nil
	})
}

func (a *App) SetFillPrompt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	a.mutate(w, r, func(s *editor.Session) error {
		s.SetFillPrompt(req.Prompt)
		return nil
	})
}

func (a *App) Pointer(w http.ResponseWriter, r *http.Request) {
	var ev editor.PointerEvent
	if !a.decode(w, r, &ev) {
		return
	}
	var snap editor.MaskSnapshot
	err := a.Sessions.Update(chi.URLParam(r, "id"), func(s *editor.Session) error {
		if err := s.ApplyPointer(ev); err != nil {
			return err
		}
		snap = s.Recorder().Snapshot()
		return nil
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, snap)
}

func (a *App) ClearMask(w http.ResponseWriter, r *http.Request) {
	a.mutate(w, r, func(s *editor.Session) error {
		s.ClearMask()
		return nil
	})
}

func (a *App) Geometry(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Sessions.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"original_dimensions": snap.Original,
		"target_dimensions":   snap.Target,
		"geometry":            snap.Geometry,
		"scale_to_target":     snap.Geometry.ScaleToTarget(snap.Target),
	})
}

func (a *App) MaskPNG(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Sessions.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Mask(&buf, snap); err != nil {
		a.fail(w, r, err)
		return
	}
	a.png(w, buf.Bytes())
}

func (a *App) PreviewPNG(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Sessions.Snapshot(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var original image.Image
	if src, err := a.loadSource(r.Context(), snap.Image); err == nil {
		if original, err = src.Decode(); err != nil {
			a.Logger.Warn().Err(err).Int("image_id", snap.Image.ID).Msg("decode original for preview")
		}
	}
	var buf bytes.Buffer
	if err := render.Preview(&buf, snap, original); err != nil {
		a.fail(w, r, err)
		return
	}
	a.png(w, buf.Bytes())
}

// Expand submits an outpainting job for the current target size and closes
// the editor.
func (a *App) Expand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req domain.ExpandRequest
	err := a.Sessions.Update(id, func(s *editor.Session) error {
		var err error
		req, err = s.ExpandRequest()
		return err
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	job, err := a.Generator.Submit(r.Context(), domain.JobTypeExpand, req, simulatedResult(req))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.Sessions.Delete(id)
	a.json(w, http.StatusAccepted, map[string]any{"job": job})
}

func (a *App) Erase(w http.ResponseWriter, r *http.Request) {
	a.submitMasked(w, r, domain.JobTypeErase, (*editor.Session).EraseRequest)
}

func (a *App) GenerateFill(w http.ResponseWriter, r *http.Request) {
	a.submitMasked(w, r, domain.JobTypeFill, (*editor.Session).GenerateRequest)
}

type maskedJobRequest struct {
	domain.ExpandRequest
	MaskKey string `json:"mask_key,omitempty"`
}

// submitMasked stores the rasterised mask next to the job and queues it. The
// session stays open.
func (a *App) submitMasked(w http.ResponseWriter, r *http.Request, jobType domain.JobType, build func(*editor.Session) (domain.ExpandRequest, error)) {
	id := chi.URLParam(r, "id")
	var (
		req  domain.ExpandRequest
		snap editor.Snapshot
	)
	err := a.Sessions.Update(id, func(s *editor.Session) error {
		var err error
		if req, err = build(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	payload := maskedJobRequest{ExpandRequest: req}
	var buf bytes.Buffer
	if err := render.Mask(&buf, snap); err != nil {
		a.fail(w, r, err)
		return
	}
	key, err := a.Files.Write(r.Context(), fmt.Sprintf("masks/%s-%s.png", id, a.newID()), buf.Bytes())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	payload.MaskKey = key

	job, err := a.Generator.Submit(r.Context(), jobType, payload, simulatedResult(req))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{"job": job, "mask_key": key})
}

// simulatedResult resolves every editor job to the original asset at the
// requested size.
func simulatedResult(req domain.ExpandRequest) generation.ResolveFunc {
	return func(job domain.Job) (any, error) {
		out := req.OriginalImage
		out.Width = req.TargetDimensions.Width
		out.Height = req.TargetDimensions.Height
		out.Status = domain.ImageStatusReady
		out.JobID = job.ID
		if req.Prompt != "" {
			out.Prompt = req.Prompt
		}
		return map[string]any{"image": out}, nil
	}
}

func (a *App) loadSource(ctx context.Context, item domain.ImageRef) (imagegen.SourceImage, error) {
	if item.Src == "" {
		return imagegen.SourceImage{}, domain.ErrImagePending
	}
	data, err := a.Files.Read(ctx, item.Src)
	if err != nil {
		return imagegen.SourceImage{}, err
	}
	return imagegen.LoadSource(item.Src, data)
}

func (a *App) png(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
