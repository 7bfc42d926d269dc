package handlers

import (
	"errors"
	"net/http"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/logger"
	"github.com/Kim-wonder/routineon/internal/notify"
)

// CurrentReminder reports the active reminder, 204 when none is pending.
func CurrentReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := d.Engine.Current()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

// AcknowledgeReminder confirms the workout: cancels the retry cascade and
// records a completion in history.
func AcknowledgeReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Engine.Acknowledge(r.Context())
		if err != nil {
			if errors.Is(err, notify.ErrNoActiveReminder) {
				writeError(w, http.StatusConflict, "no active reminder")
				return
			}
			d.Logger.Error("failed to acknowledge reminder", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to record completion")
			return
		}
		d.Logger.Info("reminder acknowledged", logger.String("alarm_id", snap.Alarm.ID))
		writeJSON(w, http.StatusOK, snap)
	}
}

// DismissReminder cancels the retry cascade without recording history.
func DismissReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Engine.Dismiss()
		if err != nil {
			if errors.Is(err, notify.ErrNoActiveReminder) {
				writeError(w, http.StatusConflict, "no active reminder")
				return
			}
			d.Logger.Error("failed to dismiss reminder", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to dismiss reminder")
			return
		}
		d.Logger.Info("reminder dismissed", logger.String("alarm_id", snap.Alarm.ID))
		writeJSON(w, http.StatusOK, snap)
	}
}
