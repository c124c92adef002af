package handler

import (
	"log/slog"
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/therapy-admin/internal/domain"
)

// HandleEvents streams every change event to an admin client as a datastar
// "events" signal patch.
// GET /api/events
func HandleEvents(bus domain.Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, cancel := bus.Subscribe()
		defer cancel()

		sse := datastar.NewSSE(w, r)
		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if err := sse.MarshalAndPatchSignals(map[string]any{"events": ev}); err != nil {
					slog.Debug("patch events signal", "error", err)
					return
				}
			}
		}
	}
}
