package handler

import (
	"context"
	"log/slog"
	"net/http"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
	"github.com/msomdec/therapy-admin/internal/view"
)

// ListingHandler renders the end-user therapy list and keeps it live.
type ListingHandler struct {
	catalog  *service.CatalogStore
	progress *service.ProgressTracker
	bus      domain.Subscriber
}

func NewListingHandler(catalog *service.CatalogStore, progress *service.ProgressTracker, bus domain.Subscriber) *ListingHandler {
	return &ListingHandler{catalog: catalog, progress: progress, bus: bus}
}

type listing struct {
	modules   []domain.TherapyModule
	completed []string
}

func (h *ListingHandler) load(ctx context.Context) (listing, error) {
	modules, err := h.catalog.ListActive(ctx)
	if err != nil {
		return listing{}, err
	}
	completed, err := h.progress.CompletedToday(ctx)
	if err != nil {
		return listing{}, err
	}
	return listing{modules: modules, completed: completed}, nil
}

// HandlePage renders the full page.
// GET /therapies
func (h *ListingHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	l, err := h.load(r.Context())
	if err != nil {
		slog.Error("load therapy listing", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view.TherapiesPage(l.modules, l.completed).Render(r.Context(), w)
}

// HandleStream patches #therapy-list whenever the catalog or today's
// progress changes. It runs until the client disconnects.
// GET /therapies/stream
func (h *ListingHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	events, cancel := h.bus.Subscribe(domain.TopicModules, domain.TopicData)
	defer cancel()

	sse := datastar.NewSSE(w, r)
	patch := func(l listing) {
		if err := sse.PatchElementTempl(
			view.TherapyList(l.modules, l.completed),
			datastar.WithSelectorID(view.TherapyListID),
		); err != nil {
			slog.Debug("patch therapy list", "error", err)
		}
	}

	// Send the current state first so a reconnecting client catches up.
	l, err := h.load(r.Context())
	if err != nil {
		slog.Error("load therapy listing", "error", err)
		return
	}
	patch(l)

	if err := service.Watch(r.Context(), events, h.load, patch); err != nil {
		slog.Error("watch therapy listing", "error", err)
	}
}
