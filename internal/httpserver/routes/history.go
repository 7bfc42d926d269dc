package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/httpserver/handlers"
	"github.com/Kim-wonder/routineon/internal/httpserver/mw"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)
	r.With(host).Get("/api/history", handlers.ListHistory(d))
	r.With(host).Get("/api/stats", handlers.Stats(d))
}
