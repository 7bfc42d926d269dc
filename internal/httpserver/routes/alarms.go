package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/httpserver/handlers"
	"github.com/Kim-wonder/routineon/internal/httpserver/mw"
)

func init() { Register(registerAlarms) }

func registerAlarms(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/alarms", func(r chi.Router) {
		r.Get("/", handlers.ListAlarms(d))
		r.Post("/", handlers.CreateAlarm(d))
		r.Get("/next", handlers.NextAlarm(d))
		r.Get("/{alarmID}", handlers.GetAlarm(d))
		r.Patch("/{alarmID}", handlers.UpdateAlarm(d))
		r.Delete("/{alarmID}", handlers.DeleteAlarm(d))
	})
}
