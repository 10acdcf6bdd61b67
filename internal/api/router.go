package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/saka/internal/dateservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// eventsHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *dateservice.Service, authEnabled bool, token string, eventsHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/today", h.Today)

	// Conversions.
	r.Get("/saka/{year}/{month}/{day}", h.Saka)
	r.Get("/gregorian/{year}/{month}/{day}", h.Gregorian)
	r.Get("/julian/{jd}", h.Julian)

	// Arithmetic and month grids.
	r.Post("/shift", h.Shift)
	r.Get("/calendar/{year}/{month}", h.Calendar)

	if eventsHandler != nil {
		r.Get("/events", eventsHandler.ServeHTTP)
	}

	return r
}
