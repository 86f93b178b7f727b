package api

import (
	"net/http"

	"github.com/dustinkb1983/nyxchat/internal/completion"
	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

type HealthHandler struct {
	db     *store.DB
	client *completion.Client
}

func NewHealthHandler(db *store.DB, client *completion.Client) *HealthHandler {
	return &HealthHandler{db: db, client: client}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:               "ok",
		DB:                   models.ServiceCheck{Status: "ok"},
		CompletionConfigured: h.client.Configured(),
	}

	memCount, err := h.db.MemoryCount()
	if err != nil {
		resp.Status = "degraded"
		resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
	} else {
		resp.MemoryCount = memCount
	}

	convCount, err := h.db.ConversationCount()
	if err != nil {
		resp.Status = "degraded"
		resp.DB = models.ServiceCheck{Status: "error", Message: err.Error()}
	} else {
		resp.ConversationCount = convCount
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
