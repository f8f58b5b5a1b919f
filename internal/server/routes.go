package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler mounts the health endpoints and serves everything else from rl.
func Handler(rl *Reloader, checks Checks, checkTimeout time.Duration, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", Liveness())
	r.Get("/health/ready", Readiness(checks, checkTimeout, log))
	r.NotFound(rl.ServeHTTP)
	r.MethodNotAllowed(rl.ServeHTTP)
	return r
}
