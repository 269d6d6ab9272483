package model

import (
	"encoding/json"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/event"
)

// Provider identifies the external platform that produced a webhook call.
type Provider string

const (
	ProviderPayments       Provider = "payments"
	ProviderRegistrar      Provider = "registrar"
	ProviderStorefront     Provider = "storefront"
	ProviderPOS            Provider = "pos"
	ProviderPluginPlatform Provider = "pluginPlatform"
)

// WebhookEvent is the canonical, provider-agnostic representation of one
// inbound notification. Instances are built once per request and never
// mutated afterwards.
type WebhookEvent struct {
	ID        string                 `json:"id"`
	Provider  Provider               `json:"provider"`
	EventType string                 `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Unmapped  bool                   `json:"unmapped,omitempty"`
	Data      map[string]interface{} `json:"data"`

	// RawPayload holds the exact bytes the signature was verified against.
	// It is never reconstructed from Data.
	RawPayload json.RawMessage `json:"raw_payload"`
}

func (e *WebhookEvent) ToCloudEvent() (event.Event, error) {
	ce := cloudevents.NewEvent()
	ce.SetID(e.ID)
	ce.SetSource("hookgate/" + string(e.Provider))
	ce.SetType(e.EventType)
	ce.SetTime(e.Timestamp)

	ce.SetExtension("provider", string(e.Provider))
	if e.Unmapped {
		ce.SetExtension("unmapped", true)
	}

	if err := ce.SetData(cloudevents.ApplicationJSON, e); err != nil {
		return ce, err
	}
	return ce, nil
}
