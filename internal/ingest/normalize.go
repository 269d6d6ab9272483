package ingest

import (
	"encoding/json"
	"strings"
	"time"

	"hookgate/internal/model"
	"hookgate/internal/providers/shared"

	"github.com/google/uuid"
)

// NormalizeInput carries everything the normalizer needs. RawBody must be
// the exact bytes that passed signature verification.
type NormalizeInput struct {
	Provider  model.Provider
	Payload   map[string]interface{}
	RawBody   []byte
	EventType string
	Unmapped  bool
	Metadata  map[string]string
}

// Normalize builds the canonical WebhookEvent. It is deterministic except
// for the fallback ID and timestamp, which only trigger when the provider
// omits those fields.
func Normalize(in NormalizeInput) model.WebhookEvent {
	data := make(map[string]interface{}, len(in.Payload)+len(in.Metadata))
	for k, v := range in.Payload {
		data[k] = v
	}
	for k, v := range in.Metadata {
		if strings.TrimSpace(v) != "" {
			data[k] = v
		}
	}

	return model.WebhookEvent{
		ID:         eventID(in.Payload),
		Provider:   in.Provider,
		EventType:  in.EventType,
		Timestamp:  eventTime(in.Payload),
		Unmapped:   in.Unmapped,
		Data:       data,
		RawPayload: json.RawMessage(in.RawBody),
	}
}

func eventID(payload map[string]interface{}) string {
	if id := shared.StringField(payload, "id", "event_id", "webhook_id"); id != "" {
		return id
	}
	return uuid.NewString()
}

func eventTime(payload map[string]interface{}) time.Time {
	// Unix-seconds field first (payments-processor convention).
	if v, ok := payload["created"]; ok {
		if secs, ok := v.(float64); ok && secs > 0 {
			return time.Unix(int64(secs), 0).UTC()
		}
	}
	if ts := shared.StringField(payload, "created_at", "timestamp", "occurred_at"); ts != "" {
		return shared.ParseTimeOrNow(ts)
	}
	return time.Now().UTC()
}
