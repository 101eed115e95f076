package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSON emits body with the given status. Encoding failures are dropped;
// the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError emits the shared error envelope. The message must be safe to
// show to the caller; technical details belong in the log.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
