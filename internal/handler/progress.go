package handler

import (
	"net/http"

	"github.com/msomdec/therapy-admin/internal/service"
)

// ProgressHandler serves the end user's daily completion state.
type ProgressHandler struct {
	catalog  *service.CatalogStore
	progress *service.ProgressTracker
}

func NewProgressHandler(catalog *service.CatalogStore, progress *service.ProgressTracker) *ProgressHandler {
	return &ProgressHandler{catalog: catalog, progress: progress}
}

// HandleGet returns today's completions.
// GET /api/progress
func (h *ProgressHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.progress.Load(r.Context())
	if err != nil {
		writeServiceError(w, "load progress", err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressDTO(p))
}

// HandleComplete marks a module done for today. Repeating it is harmless.
// POST /api/progress/{moduleId}/complete
func (h *ProgressHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	moduleID := r.PathValue("moduleId")
	if _, err := h.catalog.GetByID(r.Context(), moduleID); err != nil {
		writeServiceError(w, "complete module", err)
		return
	}

	added, err := h.progress.MarkCompleted(r.Context(), moduleID)
	if err != nil {
		writeServiceError(w, "complete module", err)
		return
	}
	p, err := h.progress.Load(r.Context())
	if err != nil {
		writeServiceError(w, "load progress", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"added":    added,
		"progress": toProgressDTO(p),
	})
}

// HandleResetPlan clears the cumulative plan.
// DELETE /api/progress/plan
func (h *ProgressHandler) HandleResetPlan(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.ResetPlan(r.Context()); err != nil {
		writeServiceError(w, "reset plan", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
