package api

import (
	"net/http"

	"github.com/dustinkb1983/nyxchat/internal/chat"
	"github.com/dustinkb1983/nyxchat/internal/models"
)

type ChatHandler struct {
	ctrl *chat.Controller
}

func NewChatHandler(ctrl *chat.Controller) *ChatHandler {
	return &ChatHandler{ctrl: ctrl}
}

// Send handles POST /chat/send
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	conv, err := h.ctrl.SendMessage(r.Context(), req.Content)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Conversation: conv,
		Status:       h.ctrl.Status().String(),
	})
}

// Retry handles POST /chat/retry
func (h *ChatHandler) Retry(w http.ResponseWriter, r *http.Request) {
	conv, err := h.ctrl.Retry(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Conversation: conv,
		Status:       h.ctrl.Status().String(),
	})
}

// New handles POST /chat/new
func (h *ChatHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.NewConversation(); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /chat/status
func (h *ChatHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": h.ctrl.Status().String()})
}
