package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

// ContentHandler serves the content editor API and the published-content
// endpoint used by the end-user app.
type ContentHandler struct {
	catalog *service.CatalogStore
	content *service.ContentStore
	ids     domain.IDGenerator
}

func NewContentHandler(catalog *service.CatalogStore, content *service.ContentStore, ids domain.IDGenerator) *ContentHandler {
	return &ContentHandler{catalog: catalog, content: content, ids: ids}
}

// HandleList returns every content record.
// GET /api/content
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.content.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, "list content", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": all})
}

// HandleGetForModule returns the module's saved content. When nothing is
// saved yet it returns an unsaved record holding the default payload for
// the ?type= query parameter.
// GET /api/modules/{id}/content?type=cbt_thought_records
func (h *ContentHandler) HandleGetForModule(w http.ResponseWriter, r *http.Request) {
	moduleID := r.PathValue("id")

	c, err := h.content.GetByModuleID(r.Context(), moduleID)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]any{"content": c, "saved": true})
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		writeServiceError(w, "get module content", err)
		return
	}

	// An unknown type yields a nil payload, which encodes as {}.
	t := domain.ContentType(r.URL.Query().Get("type"))
	writeJSON(w, http.StatusOK, map[string]any{
		"content": domain.Content{ModuleID: moduleID, Type: t, Payload: service.DefaultPayload(t)},
		"saved":   false,
	})
}

// HandleSave creates or updates the module's content record. A module has at
// most one record, so a save without existingId updates the current one.
// PUT /api/modules/{id}/content
// Request: {"contentType":"...","payload":{...},"existingId":"..."}
func (h *ContentHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	moduleID := r.PathValue("id")
	if _, err := h.catalog.GetByID(r.Context(), moduleID); err != nil {
		writeServiceError(w, "save content", err)
		return
	}

	var req saveContentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	payload, err := domain.DecodePayload(req.ContentType, req.Payload)
	if err != nil {
		writeServiceError(w, "save content", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return
	}

	c, err := h.content.SaveForModule(r.Context(), moduleID, payload, req.ExistingID)
	if err != nil {
		writeServiceError(w, "save content", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": c})
}

// HandlePublish sets the publish flag.
// POST /api/content/{id}/publish
// Request: {"published":true}
func (h *ContentHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Published bool `json:"published"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	ok, err := h.content.Publish(r.Context(), r.PathValue("id"), req.Published)
	if err != nil {
		writeServiceError(w, "publish content", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	c, err := h.content.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "publish content", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": c})
}

// HandleDelete removes a content record.
// DELETE /api/content/{id}
func (h *ContentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.content.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "delete content", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleEditSteps applies one list edit to a CBT record and saves it as a
// new version.
// POST /api/content/{id}/steps
// Request: {"op":"move","stepId":"...","direction":"up"}
func (h *ContentHandler) HandleEditSteps(w http.ResponseWriter, r *http.Request) {
	var req stepEditRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	saved, err := h.content.Update(r.Context(), r.PathValue("id"), func(p domain.Payload) (domain.Payload, error) {
		cbt, ok := p.(*domain.CBTPayload)
		if !ok {
			return nil, errNoSteps
		}
		steps, err := h.applyStepEdit(cbt.Steps, req)
		if err != nil {
			return nil, err
		}
		return &domain.CBTPayload{Steps: steps}, nil
	})
	if err != nil {
		writeServiceError(w, "edit steps", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": saved})
}

var errNoSteps = fmt.Errorf("%w: only thought-record content has steps", domain.ErrInvalidInput)

func (h *ContentHandler) applyStepEdit(steps []domain.CBTStep, req stepEditRequest) ([]domain.CBTStep, error) {
	switch req.Op {
	case "add":
		return service.AddStep(steps, h.ids), nil
	case "remove":
		return service.RemoveStep(steps, req.StepID), nil
	case "move":
		dir, err := service.ParseDirection(req.Direction)
		if err != nil {
			return nil, err
		}
		return service.MoveStep(steps, req.StepID, dir), nil
	case "update":
		return service.UpdateStep(steps, req.StepID, service.StepField(req.Field), req.Value)
	}
	return nil, fmt.Errorf("%w: unknown step operation %q", domain.ErrInvalidInput, req.Op)
}

// HandleDefault returns the default payload for a content type, or {} for
// an unknown one.
// GET /api/content-types/{type}/default
func (h *ContentHandler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	t := domain.ContentType(r.PathValue("type"))
	var payload any = struct{}{}
	if p := service.DefaultPayload(t); p != nil {
		payload = p
	}
	writeJSON(w, http.StatusOK, map[string]any{"contentType": t, "payload": payload})
}

// HandleContentTypes lists the content type tags.
// GET /api/content-types
func (h *ContentHandler) HandleContentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"contentTypes": service.ContentTypes()})
}

// HandlePublished returns a module's content only when it is published.
// GET /api/therapies/{id}/content
func (h *ContentHandler) HandlePublished(w http.ResponseWriter, r *http.Request) {
	c, err := h.content.GetByModuleID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get published content", err)
		return
	}
	if !c.IsPublished {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"content": c})
}
