package api

import (
	"encoding/json"
	"io"
	"net/http"
)

const maxWebhookBodyBytes int64 = 1 << 20 // 1 MiB

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeErr emits the gateway's error shape. Providers key their retry
// behavior off the status code, so the body stays a single short string.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]interface{}{"error": message})
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func readBodyLimited(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return io.ReadAll(r.Body)
}
