package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dustinkb1983/nyxchat/internal/memory"
	"github.com/dustinkb1983/nyxchat/internal/models"
)

type MemoryHandler struct {
	engine *memory.Engine
}

func NewMemoryHandler(engine *memory.Engine) *MemoryHandler {
	return &MemoryHandler{engine: engine}
}

// List handles GET /memories
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.engine.All()

	if cat := r.URL.Query().Get("category"); cat != "" {
		filtered := entries[:0]
		for _, e := range entries {
			if string(e.Category) == cat {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if entries == nil {
		entries = []*models.MemoryEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"memories": entries})
}

// Create handles POST /memories
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "content is required and importance must be between 0 and 10")
		return
	}

	entry, err := h.engine.Add(req.Content, req.Category, req.Importance, req.Tags)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Get handles GET /memories/{id}
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry := h.engine.Get(id)
	if entry == nil {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Update handles PATCH /memories/{id}
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateMemoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "importance must be between 0 and 10")
		return
	}

	entry, err := h.engine.Update(id, &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /memories/{id}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.engine.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearAll handles DELETE /memories
func (h *MemoryHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	deleted, failed, err := h.engine.ClearAll()
	if err != nil && deleted == 0 && failed == 0 {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ClearMemoriesResponse{
		Deleted: deleted,
		Failed:  failed,
	})
}

// Pin handles POST /memories/{id}/pin
func (h *MemoryHandler) Pin(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, true)
}

// Unpin handles POST /memories/{id}/unpin
func (h *MemoryHandler) Unpin(w http.ResponseWriter, r *http.Request) {
	h.setPinned(w, r, false)
}

func (h *MemoryHandler) setPinned(w http.ResponseWriter, r *http.Request, pinned bool) {
	id := chi.URLParam(r, "id")

	var entry *models.MemoryEntry
	var err error
	if pinned {
		entry, err = h.engine.Pin(id)
	} else {
		entry, err = h.engine.Unpin(id)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if entry == nil {
		writeError(w, http.StatusNotFound, "memory not found")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

// Relevant handles GET /memories/relevant
func (h *MemoryHandler) Relevant(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	entries := h.engine.Relevant(limit)
	if entries == nil {
		entries = []*models.MemoryEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"memories": entries})
}
