package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Kim-wonder/routineon/internal/domain"
	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/logger"
)

type createAlarmRequest struct {
	VideoID    string `json:"videoId" validate:"required"`
	Title      string `json:"title"`
	DaysOfWeek []int  `json:"daysOfWeek" validate:"required,min=1,dive,gte=0,lte=6"`
	Time       string `json:"time" validate:"required"`
	Enabled    *bool  `json:"enabled"`
}

// updateAlarmRequest carries a partial update. Absent fields stay untouched.
type updateAlarmRequest struct {
	VideoID    *string `json:"videoId"`
	Title      *string `json:"title"`
	DaysOfWeek *[]int  `json:"daysOfWeek" validate:"omitempty,min=1,dive,gte=0,lte=6"`
	Time       *string `json:"time"`
	Enabled    *bool   `json:"enabled"`
}

func ListAlarms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.MemoryIndex.AllAlarms())
	}
}

func GetAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "alarmID")
		alarm, ok := d.MemoryIndex.Alarm(id)
		if !ok {
			writeError(w, http.StatusNotFound, "alarm not found")
			return
		}
		writeJSON(w, http.StatusOK, alarm)
	}
}

func CreateAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAlarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		enabled := true
		if req.Enabled != nil {
			enabled = *req.Enabled
		}

		now := d.TimeNow()
		alarm := &domain.Alarm{
			ID:         uuid.NewString(),
			VideoID:    req.VideoID,
			Title:      req.Title,
			DaysOfWeek: req.DaysOfWeek,
			Time:       req.Time,
			Enabled:    enabled,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := alarm.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Store.SaveAlarm(r.Context(), alarm); err != nil {
			d.Logger.Error("failed to save alarm", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save alarm")
			return
		}
		d.MemoryIndex.PutAlarm(alarm)

		d.Logger.Info("alarm created",
			logger.String("alarm_id", alarm.ID),
			logger.String("video_id", alarm.VideoID))
		writeJSON(w, http.StatusCreated, alarm)
	}
}

func UpdateAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "alarmID")
		existing, ok := d.MemoryIndex.Alarm(id)
		if !ok {
			writeError(w, http.StatusNotFound, "alarm not found")
			return
		}

		var req updateAlarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := d.Validate.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated := *existing
		if req.VideoID != nil {
			updated.VideoID = *req.VideoID
		}
		if req.Title != nil {
			updated.Title = *req.Title
		}
		if req.DaysOfWeek != nil {
			updated.DaysOfWeek = *req.DaysOfWeek
		}
		if req.Time != nil {
			updated.Time = *req.Time
		}
		if req.Enabled != nil {
			updated.Enabled = *req.Enabled
		}
		updated.UpdatedAt = d.TimeNow()

		if err := updated.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := d.Store.SaveAlarm(r.Context(), &updated); err != nil {
			d.Logger.Error("failed to save alarm", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save alarm")
			return
		}
		d.MemoryIndex.PutAlarm(&updated)

		writeJSON(w, http.StatusOK, &updated)
	}
}

func DeleteAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "alarmID")
		if _, ok := d.MemoryIndex.Alarm(id); !ok {
			writeError(w, http.StatusNotFound, "alarm not found")
			return
		}

		// History records referencing this alarm are kept on purpose.
		if err := d.Store.DeleteAlarm(r.Context(), id); err != nil {
			d.Logger.Error("failed to delete alarm", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete alarm")
			return
		}
		d.MemoryIndex.DeleteAlarm(id)

		d.Logger.Info("alarm deleted", logger.String("alarm_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

type nextAlarmResponse struct {
	Alarm   *domain.Alarm `json:"alarm"`
	FiresAt time.Time     `json:"firesAt"`
}

// NextAlarm reports the soonest upcoming occurrence across all alarms.
func NextAlarm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		occ, ok := domain.NextOccurrence(d.MemoryIndex.AllAlarms(), d.TimeNow())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, nextAlarmResponse{Alarm: occ.Alarm, FiresAt: occ.FiresAt})
	}
}
