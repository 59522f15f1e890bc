package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"imagestudio/internal/domain"
)

// GetJob reports a generation job so clients can poll for completion.
func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(jobID); err != nil {
		a.fail(w, r, domain.ErrNotFound)
		return
	}
	job, err := a.Jobs.GetByID(r.Context(), jobID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, job)
}
