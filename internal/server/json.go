package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/locusmaps/scoutmap/internal/scout"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store sentinels to HTTP statuses. Attachment
// validation failures carry their own message and map to 413/422.
func writeStoreError(w http.ResponseWriter, err error) {
	var attErr *scout.AttachmentError
	switch {
	case errors.As(err, &attErr):
		status := http.StatusUnprocessableEntity
		if attErr.Code == "too_large" || attErr.Code == "total_exceeded" {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]any{"success": false, "error": attErr.Message})
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
