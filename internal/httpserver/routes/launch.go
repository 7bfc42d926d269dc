package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Kim-wonder/routineon/internal/httpserver/deps"
	"github.com/Kim-wonder/routineon/internal/httpserver/handlers"
	"github.com/Kim-wonder/routineon/internal/httpserver/mw"
)

func init() { Register(registerLaunch) }

func registerLaunch(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/launch/{videoID}", handlers.Launch(d))
}
