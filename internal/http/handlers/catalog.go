package handlers

import (
	"net/http"

	"imagestudio/internal/editor"
	"imagestudio/internal/gallery"
)

type aspectRatioView struct {
	Label    string `json:"label"`
	RatioW   int    `json:"ratio_w"`
	RatioH   int    `json:"ratio_h"`
	Original bool   `json:"original"`
}

func (a *App) AspectRatios(w http.ResponseWriter, r *http.Request) {
	options := editor.AspectRatios()
	out := make([]aspectRatioView, 0, len(options))
	for _, o := range options {
		out = append(out, aspectRatioView{Label: o.Label, RatioW: o.RatioW, RatioH: o.RatioH, Original: o.IsOriginal()})
	}
	a.json(w, http.StatusOK, map[string]any{"items": out})
}

func (a *App) GenerateDefaults(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, gallery.Defaults())
}
