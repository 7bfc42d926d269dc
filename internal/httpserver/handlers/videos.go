package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/logger"
	"github.com/Kim-wonder/routineon/internal/youtube"
)

type resolveVideoRequest struct {
	URL string `json:"url" validate:"required"`
}

func ListVideos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.MemoryIndex.AllVideos())
	}
}

func GetVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "videoID")
		video, ok := d.MemoryIndex.Video(id)
		if !ok {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeJSON(w, http.StatusOK, video)
	}
}

// ResolveVideo extracts a video id from a pasted URL, fetches its metadata,
// and stores the result. Resolving an already-known video refreshes it.
func ResolveVideo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resolveVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		videoID, ok := youtube.ExtractVideoID(req.URL)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, "unrecognized video URL")
			return
		}

		video, err := d.YouTube.FetchMetadata(r.Context(), videoID)
		if err != nil {
			d.Logger.Warn("metadata fetch failed",
				logger.String("video_id", videoID),
				logger.Error(err))
			writeError(w, http.StatusBadGateway, "failed to fetch video metadata")
			return
		}

		if err := d.Store.SaveVideo(r.Context(), video); err != nil {
			d.Logger.Error("failed to save video", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save video")
			return
		}
		d.MemoryIndex.PutVideo(video)

		d.Logger.Info("video resolved",
			logger.String("video_id", video.ID),
			logger.String("title", video.Title))
		writeJSON(w, http.StatusOK, video)
	}
}
