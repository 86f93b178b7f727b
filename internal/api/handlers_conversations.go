package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dustinkb1983/nyxchat/internal/chat"
	"github.com/dustinkb1983/nyxchat/internal/models"
)

type ConversationHandler struct {
	ctrl *chat.Controller
}

func NewConversationHandler(ctrl *chat.Controller) *ConversationHandler {
	return &ConversationHandler{ctrl: ctrl}
}

// List handles GET /conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	convs, err := h.ctrl.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if convs == nil {
		convs = []*models.Conversation{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"conversations": convs})
}

// Get handles GET /conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.ctrl.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if conv == nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// Delete handles DELETE /conversations/{id}
func (h *ConversationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ctrl.DeleteConversation(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate handles POST /conversations/{id}/activate
func (h *ConversationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.ctrl.Activate(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Conversation: conv,
		Status:       h.ctrl.Status().String(),
	})
}
