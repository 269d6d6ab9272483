package processor

import (
	"context"
	"strings"
	"testing"
	"time"

	"hookgate/internal/model"
	"hookgate/internal/store"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

func TestRecorder(t *testing.T) {
	repo := store.NewMemoryRepository()
	rec := NewRecorder(repo, logr.Discard())

	ev := model.WebhookEvent{
		ID:        "evt_1",
		Provider:  model.ProviderRegistrar,
		EventType: "domain.registered",
		Timestamp: time.Now().UTC(),
	}
	res, err := rec.ProcessWebhookEvent(context.Background(), ev)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !res.Success || res.Message != "webhook processed" {
		t.Fatalf("unexpected result %+v", res)
	}

	n, err := repo.CountEvents(context.Background(), model.ProviderRegistrar)
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestRecorderLogsCloudEventEnvelope(t *testing.T) {
	var lines []string
	logger := funcr.New(func(_, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 1})

	rec := NewRecorder(store.NewMemoryRepository(), logger)
	_, err := rec.ProcessWebhookEvent(context.Background(), model.WebhookEvent{
		ID:        "evt_ce",
		Provider:  model.ProviderStorefront,
		EventType: "order.created",
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "hookgate/storefront") {
		t.Fatalf("expected envelope source in log, got %q", joined)
	}
	if !strings.Contains(joined, "ce_specversion") {
		t.Fatalf("expected envelope spec version in log, got %q", joined)
	}
}

func TestRecorderPropagatesSaveFailure(t *testing.T) {
	repo := store.NewMemoryRepository()
	rec := NewRecorder(repo, logr.Discard())

	// Missing ID fails validation in the repository.
	_, err := rec.ProcessWebhookEvent(context.Background(), model.WebhookEvent{
		Provider:  model.ProviderPOS,
		EventType: "order.created",
	})
	if err == nil {
		t.Fatalf("expected save failure to surface")
	}
}

func TestFuncAdapter(t *testing.T) {
	called := false
	p := Func(func(_ context.Context, ev model.WebhookEvent) (Result, error) {
		called = true
		return Result{Success: true, Message: "ok " + ev.ID}, nil
	})
	res, err := p.ProcessWebhookEvent(context.Background(), model.WebhookEvent{ID: "x"})
	if err != nil || !called || res.Message != "ok x" {
		t.Fatalf("adapter failed: %+v, %v", res, err)
	}
}
