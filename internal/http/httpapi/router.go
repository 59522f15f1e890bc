package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"imagestudio/internal/http/handlers"
	"imagestudio/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(app.Logger),
		chimw.Recoverer,
		middleware.CORS(app.Config.CORSAllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute))

		r.Get("/v1/aspect-ratios", app.AspectRatios)

		r.Get("/v1/generate/defaults", app.GenerateDefaults)
		r.Post("/v1/generate", app.Generate)

		r.Route("/v1/gallery", func(r chi.Router) {
			r.Get("/", app.ListGallery)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.GetGalleryItem)
				r.Get("/neighbors", app.GalleryNeighbors)
				r.Get("/download", app.DownloadGalleryItem)
				r.Get("/prompt", app.CopyGalleryPrompt)
				r.Get("/bundle", app.GalleryBundle)
			})
		})

		r.Route("/v1/sessions", func(r chi.Router) {
			r.Post("/", app.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", app.GetSession)
				r.Delete("/", app.DeleteSession)
				r.Post("/ratio", app.SelectRatio)
				r.Post("/custom-size", app.SetCustomSize)
				r.Post("/panel", app.TogglePanel)
				r.Post("/masking", app.SetMasking)
				r.Post("/brush", app.SetBrush)
				r.Post("/fill-prompt", app.SetFillPrompt)
				r.Post("/pointer", app.Pointer)
				r.Get("/pointer", app.PointerStream)
				r.Post("/clear", app.ClearMask)
				r.Get("/geometry", app.Geometry)
				r.Get("/mask.png", app.MaskPNG)
				r.Get("/preview.png", app.PreviewPNG)
				r.Post("/expand", app.Expand)
				r.Post("/erase", app.Erase)
				r.Post("/generate", app.GenerateFill)
			})
		})

		r.Get("/v1/jobs/{id}", app.GetJob)
	})

	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(app.Files.BasePath())))
	r.Get("/static/*", fs.ServeHTTP)

	return r
}
