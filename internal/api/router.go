package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/seojinpark/nabi/internal/assistant"
	"github.com/seojinpark/nabi/internal/history"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *assistant.Service, log history.CommandLog, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Command pipeline.
	r.Post("/command", h.ProcessCommand)
	r.Get("/databases", h.GetDatabases)

	// Narrow entry points.
	r.Post("/summary", h.SaveSummary)
	r.Delete("/pages/{name}", h.DeletePage)

	// Command log.
	r.Get("/history", h.History)

	return r
}
