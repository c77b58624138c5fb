package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"booklingo/internal/handlers"
	"booklingo/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	BookService    service.BookService
	Store          handlers.Pinger
	MaxUploadBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.BookService, deps.MaxUploadBytes)
	statusHandler := handlers.NewStatusHandler(deps.BookService)
	chaptersHandler := handlers.NewChaptersHandler(deps.BookService)
	cancelHandler := handlers.NewCancelHandler(deps.BookService)
	adaptHandler := handlers.NewAdaptChapterHandler(deps.BookService)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Route("/books", func(r chi.Router) {
			// Uploads are bounded by size, not time.
			r.Method(http.MethodPost, "/upload", uploadHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(30 * time.Second))
				r.Method(http.MethodGet, "/{id}/status", statusHandler)
				r.Method(http.MethodGet, "/{id}/chapters", chaptersHandler)
				r.Method(http.MethodPost, "/{id}/cancel", cancelHandler)
				r.Method(http.MethodPost, "/{id}/chapters/{number}/adapt", adaptHandler)
			})
		})
	})

	return r
}
