package api

import (
	"net/http"
	"time"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "hookgate",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleDescriptor serves the static registry listing: one entry per
// provider with its route and header contract. Purely informational, no
// verification happens here.
func (s *Server) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	entries := make([]map[string]interface{}, 0)
	for _, provider := range s.registry.Providers() {
		adapter, err := s.registry.Adapter(provider)
		if err != nil {
			continue
		}
		slug, ok := routeSlug[provider]
		if !ok {
			slug = string(provider)
		}
		entry := map[string]interface{}{
			"provider":         string(provider),
			"method":           http.MethodPost,
			"path":             "/v1/webhooks/" + slug,
			"required_headers": adapter.RequiredHeaders(),
			"event_types":      adapter.CanonicalTypes(),
		}
		if optional := adapter.OptionalHeaders(); len(optional) > 0 {
			entry["optional_headers"] = optional
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"webhooks": entries})
}
