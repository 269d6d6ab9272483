package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"hookgate/internal/ingest"
)

// handleWebhook terminates one provider's webhook calls. The order is
// load-bearing: headers are checked before the body is read, the raw bytes
// are captured exactly once, and nothing is parsed until the signature over
// those bytes has been verified.
func (s *Server) handleWebhook(adapter ingest.ProviderAdapter) http.HandlerFunc {
	provider := adapter.Provider()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeErr(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		for _, name := range adapter.RequiredHeaders() {
			if strings.TrimSpace(r.Header.Get(name)) == "" {
				s.observe(provider, "missing_headers")
				writeErr(w, http.StatusBadRequest, "Missing required headers")
				return
			}
		}

		if !s.rateLimiter.Allow(r, string(provider)) {
			s.observe(provider, "rate_limited")
			writeErr(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		body, err := readBodyLimited(w, r, maxWebhookBodyBytes)
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				s.observe(provider, "internal_error")
				writeErr(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			s.logger.Error(err, "webhook body read failed", "provider", provider)
			s.observe(provider, "internal_error")
			writeErr(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !adapter.Verify(r.Header, body) {
			s.logger.Info("webhook signature verification failed", "provider", provider)
			s.observe(provider, "invalid_signature")
			writeErr(w, http.StatusUnauthorized, "Invalid signature")
			return
		}

		// Past this point the payload is authentic; a parse failure is a
		// malformed-but-authentic payload, not a client auth problem.
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			s.logger.Error(err, "webhook payload parse failed", "provider", provider)
			s.observe(provider, "parse_error")
			writeErr(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		native := adapter.NativeType(r.Header, payload)
		eventType, mapped := adapter.CanonicalType(native)
		if !mapped {
			eventType = native
		}

		event := ingest.Normalize(ingest.NormalizeInput{
			Provider:  provider,
			Payload:   payload,
			RawBody:   body,
			EventType: eventType,
			Unmapped:  !mapped,
			Metadata:  adapter.Metadata(r.Header),
		})

		result, err := s.processor.ProcessWebhookEvent(r.Context(), event)
		if err != nil {
			s.logger.Error(err, "webhook processing failed", "provider", provider, "event_id", event.ID)
			s.observe(provider, "internal_error")
			writeErr(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !result.Success {
			s.logger.Info("webhook processor rejected event", "provider", provider, "event_id", event.ID, "error", result.Error)
			s.observe(provider, "processor_error")
			writeErr(w, http.StatusInternalServerError, result.Error)
			return
		}

		s.observe(provider, "accepted")
		writeSuccess(w, result.Message)
	}
}
