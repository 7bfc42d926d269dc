package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/httpserver/handlers"
	"github.com/Kim-wonder/routineon/internal/httpserver/mw"
)

func init() { Register(registerVideos) }

func registerVideos(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/videos", func(r chi.Router) {
		r.Get("/", handlers.ListVideos(d))
		// Resolve fans out to a public metadata API; keep it rate limited.
		r.With(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.ResolveBurst,
			RefillPerIPPerMin: d.ResolveRefillPerMin,
			TrustProxy:        d.TrustProxy,
		})).Post("/resolve", handlers.ResolveVideo(d))
		r.Get("/{videoID}", handlers.GetVideo(d))
	})
}
