package processor

import (
	"context"
	"fmt"

	"hookgate/internal/model"
	"hookgate/internal/store"

	"github.com/go-logr/logr"
)

// Result is what a processor reports back to the ingestion endpoint. A
// Success=false result becomes a 500 with Error in the body; a returned
// error becomes a generic 500.
type Result struct {
	Success bool
	Message string
	Error   string
}

// Processor consumes one canonical WebhookEvent. Delivery is at-least-once:
// implementations must tolerate duplicate event IDs.
type Processor interface {
	ProcessWebhookEvent(ctx context.Context, event model.WebhookEvent) (Result, error)
}

// Func adapts a plain function to the Processor interface.
type Func func(ctx context.Context, event model.WebhookEvent) (Result, error)

func (f Func) ProcessWebhookEvent(ctx context.Context, event model.WebhookEvent) (Result, error) {
	return f(ctx, event)
}

// Recorder is the default processor: it appends every delivery to the
// delivery log and emits the CloudEvents envelope attributes on the debug
// log so consumers tailing it see the same identifiers a bus would carry.
type Recorder struct {
	repo   store.Repository
	logger logr.Logger
}

func NewRecorder(repo store.Repository, logger logr.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

func (r *Recorder) ProcessWebhookEvent(ctx context.Context, event model.WebhookEvent) (Result, error) {
	if r.repo == nil {
		return Result{}, fmt.Errorf("recorder has no repository")
	}
	ce, err := event.ToCloudEvent()
	if err != nil {
		return Result{}, fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	receivedAt, err := r.repo.SaveEvent(ctx, event)
	if err != nil {
		return Result{}, fmt.Errorf("save event %s: %w", event.ID, err)
	}
	r.logger.V(1).Info("webhook event recorded",
		"provider", event.Provider,
		"event_id", event.ID,
		"event_type", event.EventType,
		"ce_source", ce.Source(),
		"ce_specversion", ce.SpecVersion(),
		"received_at", receivedAt,
	)
	return Result{Success: true, Message: "webhook processed"}, nil
}
