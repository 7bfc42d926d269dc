package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	AlarmsLoaded *int   `json:"alarms_loaded,omitempty"`
	VideosLoaded *int   `json:"videos_loaded,omitempty"`
	LastSync     string `json:"last_sync,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the health of each runtime component.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alarms := d.MemoryIndex.AlarmCount()
		videos := d.MemoryIndex.VideoCount()
		lastSync := "never"
		if t := d.MemoryIndex.LastSync(); !t.IsZero() {
			lastSync = t.Format("2006-01-02 15:04:05")
		}

		engineMode := "in-app"
		if d.Engine != nil && d.Engine.PushEnabled() {
			engineMode = "in-app+push"
		}

		components := map[string]componentStatus{
			"index": {
				OK:           true,
				AlarmsLoaded: &alarms,
				VideosLoaded: &videos,
				LastSync:     lastSync,
			},
			"redis": checkRedis(d),
			"engine": {
				OK:   d.Engine != nil,
				Mode: engineMode,
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: false, Error: "client not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	return componentStatus{OK: true}
}
