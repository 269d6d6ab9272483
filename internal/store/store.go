package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"hookgate/internal/model"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Repository is the delivery log behind the default processor. It is
// append-only on purpose: providers redeliver on timeout, so the same event
// ID may appear in multiple rows and deduplication stays a consumer concern.
type Repository interface {
	SaveEvent(ctx context.Context, event model.WebhookEvent) (time.Time, error)
	ListEvents(ctx context.Context, provider model.Provider, limit int) ([]model.WebhookEvent, error)
	CountEvents(ctx context.Context, provider model.Provider) (int, error)
}

type delivery struct {
	event      model.WebhookEvent
	receivedAt time.Time
}

type MemoryRepository struct {
	mu         sync.RWMutex
	deliveries []delivery
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) SaveEvent(_ context.Context, event model.WebhookEvent) (time.Time, error) {
	if err := validateEvent(event); err != nil {
		return time.Time{}, err
	}
	now := time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, delivery{event: event, receivedAt: now})
	return now, nil
}

func (m *MemoryRepository) ListEvents(_ context.Context, provider model.Provider, limit int) ([]model.WebhookEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.WebhookEvent, 0, limit)
	for i := len(m.deliveries) - 1; i >= 0 && len(out) < limit; i-- {
		d := m.deliveries[i]
		if provider != "" && d.event.Provider != provider {
			continue
		}
		out = append(out, d.event)
	}
	return out, nil
}

func (m *MemoryRepository) CountEvents(_ context.Context, provider model.Provider) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if provider == "" {
		return len(m.deliveries), nil
	}
	n := 0
	for _, d := range m.deliveries {
		if d.event.Provider == provider {
			n++
		}
	}
	return n, nil
}

func validateEvent(event model.WebhookEvent) error {
	if strings.TrimSpace(event.ID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(string(event.Provider)) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(event.EventType) == "" {
		return ErrInvalidInput
	}
	return nil
}
