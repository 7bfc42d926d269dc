package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/deeplink"
	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
)

// Launch returns the launch plan for a video: the native app URL to try
// first and the browser URL to fall back to.
func Launch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "videoID")
		if _, ok := d.MemoryIndex.Video(id); !ok {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeJSON(w, http.StatusOK, deeplink.NewPlan(id))
	}
}
