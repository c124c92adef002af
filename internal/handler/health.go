package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// HandleHealthz reports whether the server can reach its storage. ready is
// usually CatalogStore.Ready.
// GET /healthz
func HandleHealthz(ready func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ready(r.Context()); err != nil {
			slog.Warn("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
