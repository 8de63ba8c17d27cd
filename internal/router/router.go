package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reclip-backend/internal/handlers"
	"reclip-backend/internal/middleware"
	"reclip-backend/internal/websocket"
)

func New(
	repurposeHandler *handlers.RepurposeHandler,
	generationHandler *handlers.GenerationHandler,
	wsHub *websocket.Hub,
	mediaRoot string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Repurposing kicks off downloads and paid generation calls
	repurposeLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(repurposeLimiter.Middleware)
			r.Post("/repurpose", repurposeHandler.Process)
		})

		r.Route("/generations", func(r chi.Router) {
			r.Get("/", generationHandler.List)
			r.Get("/{id}", generationHandler.Get)
		})

		r.Get("/ws/{requestID}", wsHub.HandleWebSocket)
	})

	// Retained media for playback, served straight from the arena
	fileServer := http.FileServer(http.Dir(mediaRoot))
	r.Get("/media/*", http.StripPrefix("/media/", fileServer).ServeHTTP)

	return r
}
