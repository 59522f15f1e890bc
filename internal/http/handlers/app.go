package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"imagestudio/internal/domain"
	"imagestudio/internal/editor"
	"imagestudio/internal/gallery"
	"imagestudio/internal/generation"
	"imagestudio/internal/infra"
	"imagestudio/internal/storage"
)

const maxBodyBytes = 1 << 20

// App holds the dependencies shared by every handler.
type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Sessions  *editor.Store
	Gallery   *gallery.Gallery
	Jobs      domain.JobRepository
	Generator generation.Submitter
	Files     *storage.FileStore

	newID func() string
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, sessions *editor.Store, g *gallery.Gallery, jobs domain.JobRepository, gen generation.Submitter, files *storage.FileStore) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Gallery:   g,
		Jobs:      jobs,
		Generator: gen,
		Files:     files,
		newID:     uuid.NewString,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

// fail maps domain errors onto HTTP responses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrNoPrompt):
		a.error(w, http.StatusNotFound, "no_prompt", err.Error())
	case errors.Is(err, domain.ErrInvalidPrompt),
		errors.Is(err, domain.ErrPromptRequired),
		errors.Is(err, domain.ErrUnknownAspectRatio),
		errors.Is(err, domain.ErrUnsupportedImageType),
		errors.Is(err, domain.ErrInvalidDimensions),
		errors.Is(err, domain.ErrInvalidPointerEvent):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrOriginalResolved),
		errors.Is(err, domain.ErrMaskEmpty),
		errors.Is(err, domain.ErrPanelClosed),
		errors.Is(err, domain.ErrImagePending):
		a.error(w, http.StatusConflict, "conflict", err.Error())
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) imageID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid image id")
		return 0, false
	}
	return id, true
}

// imageView is a gallery item with its public URL.
type imageView struct {
	domain.ImageRef
	URL string `json:"url,omitempty"`
}

func (a *App) view(item domain.ImageRef) imageView {
	v := imageView{ImageRef: item}
	if item.Src != "" {
		v.URL = storage.URL(a.Config.StorageBaseURL, item.Src)
	}
	return v
}
