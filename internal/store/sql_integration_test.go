package store

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"hookgate/internal/migrate"
	"hookgate/internal/model"
)

func TestSQLRepositoryIntegration(t *testing.T) {
	driver := strings.TrimSpace(os.Getenv("HOOKGATE_SQL_TEST_DRIVER"))
	dsn := strings.TrimSpace(os.Getenv("HOOKGATE_SQL_TEST_DSN"))
	dialect := strings.TrimSpace(os.Getenv("HOOKGATE_SQL_TEST_DIALECT"))
	if driver == "" {
		t.Skip("set HOOKGATE_SQL_TEST_DRIVER and HOOKGATE_SQL_TEST_DSN to run SQL integration test")
	}
	if dsn == "" {
		t.Skip("set HOOKGATE_SQL_TEST_DSN to run SQL integration test")
	}
	if dialect == "" {
		dialect = "sqlite"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		if strings.Contains(err.Error(), "unknown driver") {
			t.Skipf("sql driver not registered: %v", err)
		}
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		if strings.Contains(err.Error(), "unknown driver") {
			t.Skipf("sql driver not registered: %v", err)
		}
		t.Fatalf("ping db: %v", err)
	}

	runner := migrate.NewRunner(os.DirFS("../.."))
	if err := runner.Apply(ctx, db, dialect); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	repo, err := NewSQLRepository(db, dialect)
	if err != nil {
		t.Fatalf("new sql repo: %v", err)
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e1 := model.WebhookEvent{
		ID:         "sql_evt_1",
		Provider:   model.ProviderStorefront,
		EventType:  "order.created",
		Timestamp:  base,
		Data:       map[string]interface{}{"id": "sql_evt_1", "total": "12.50"},
		RawPayload: []byte(`{"id":"sql_evt_1","total":"12.50"}`),
	}
	e2 := e1
	e2.ID = "sql_evt_2"
	e2.EventType = "order.updated"
	e2.Timestamp = base.Add(time.Minute)

	if _, err := repo.SaveEvent(ctx, e1); err != nil {
		t.Fatalf("save e1: %v", err)
	}
	if _, err := repo.SaveEvent(ctx, e2); err != nil {
		t.Fatalf("save e2: %v", err)
	}
	// Redelivery of the same event ID appends a new row.
	if _, err := repo.SaveEvent(ctx, e1); err != nil {
		t.Fatalf("save e1 again: %v", err)
	}

	events, err := repo.ListEvents(ctx, model.ProviderStorefront, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d rows", len(events))
	}
	if events[0].ID != "sql_evt_1" || events[1].ID != "sql_evt_2" {
		t.Fatalf("expected newest-first ordering, got %q, %q", events[0].ID, events[1].ID)
	}
	if !events[1].Timestamp.Equal(base.Add(time.Minute)) {
		t.Fatalf("timestamp round-trip failed: %v", events[1].Timestamp)
	}
	if events[1].Data["total"] != "12.50" {
		t.Fatalf("data round-trip failed: %v", events[1].Data)
	}

	n, err := repo.CountEvents(ctx, model.ProviderStorefront)
	if err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}
	if n, err := repo.CountEvents(ctx, model.ProviderPayments); err != nil || n != 0 {
		t.Fatalf("payments count = %d, %v", n, err)
	}
}
