package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dustinkb1983/nyxchat/internal/models"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps sentinel errors onto HTTP statuses; anything
// unrecognized (including storage failures) is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "message content must not be empty")
	case errors.Is(err, models.ErrNoConversation):
		writeError(w, http.StatusBadRequest, "no active conversation")
	case errors.Is(err, models.ErrBusy):
		writeError(w, http.StatusConflict, "a request is already in flight")
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		var se *store.StorageError
		if errors.As(err, &se) {
			writeError(w, http.StatusInternalServerError, "storage failure: "+se.Op)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
