package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/httpserver/handlers"
	"github.com/Kim-wonder/routineon/internal/httpserver/mw"
)

func init() { Register(registerReminder) }

func registerReminder(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/reminder", func(r chi.Router) {
		r.Get("/", handlers.CurrentReminder(d))
		r.Post("/ack", handlers.AcknowledgeReminder(d))
		r.Post("/dismiss", handlers.DismissReminder(d))
	})
}
