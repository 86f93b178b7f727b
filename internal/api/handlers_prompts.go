package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

type PromptHandler struct {
	prompts *store.PromptStore
}

func NewPromptHandler(prompts *store.PromptStore) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

// List handles GET /prompts
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.prompts.GetAll()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if all == nil {
		all = []*models.PromptTemplate{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"prompts": all})
}

// Create handles POST /prompts
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePromptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "name and content are required")
		return
	}

	now := time.Now().Unix()
	p := &models.PromptTemplate{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.prompts.Put(p); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Get handles GET /prompts/{id}
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.prompts.GetByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "prompt not found")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Update handles PATCH /prompts/{id}
func (h *PromptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdatePromptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := h.prompts.GetByID(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "prompt not found")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	p.UpdatedAt = time.Now().Unix()

	if err := h.prompts.Put(p); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /prompts/{id}
func (h *PromptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.prompts.Delete(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
