package handler

import (
	"net/http"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

// ModuleHandler serves the admin catalog API.
type ModuleHandler struct {
	catalog *service.CatalogStore
}

func NewModuleHandler(catalog *service.CatalogStore) *ModuleHandler {
	return &ModuleHandler{catalog: catalog}
}

// HandleList returns every module, active or not.
// GET /api/modules
func (h *ModuleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	modules, err := h.catalog.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, "list modules", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modules": modules})
}

// HandleGet returns one module.
// GET /api/modules/{id}
func (h *ModuleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get module", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"module": m})
}

// HandleCreate validates and stores a new module. Status defaults to Active.
// POST /api/modules
func (h *ModuleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.ModuleInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if in.Status == "" {
		in.Status = domain.ModuleStatusActive
	}
	if err := service.ValidateModuleInput(in); err != nil {
		writeServiceError(w, "create module", err)
		return
	}

	m, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, "create module", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"module": m})
}

// HandleUpdate applies a partial update.
// PATCH /api/modules/{id}
func (h *ModuleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.ModulePatch
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := service.ValidateModulePatch(patch); err != nil {
		writeServiceError(w, "update module", err)
		return
	}

	m, err := h.catalog.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, "update module", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"module": m})
}

// HandleDelete removes a module. Its content record is kept.
// DELETE /api/modules/{id}
func (h *ModuleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.catalog.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "delete module", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleStatus flips a module between Active and Inactive.
// POST /api/modules/{id}/toggle-status
func (h *ModuleHandler) HandleToggleStatus(w http.ResponseWriter, r *http.Request) {
	m, err := h.catalog.ToggleStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "toggle module status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"module": m})
}
