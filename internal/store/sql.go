package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hookgate/internal/model"
)

type SQLRepository struct {
	db      *sql.DB
	dialect string
}

func NewSQLRepository(db *sql.DB, dialect string) (*SQLRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db")
	}
	d := strings.ToLower(strings.TrimSpace(dialect))
	if d == "" {
		return nil, fmt.Errorf("empty dialect")
	}
	if d != "postgres" && d != "sqlite" {
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
	return &SQLRepository{db: db, dialect: d}, nil
}

func (s *SQLRepository) ph(n int) string {
	if s.dialect == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLRepository) SaveEvent(ctx context.Context, event model.WebhookEvent) (time.Time, error) {
	if err := validateEvent(event); err != nil {
		return time.Time{}, err
	}

	dataJSON, err := json.Marshal(event.Data)
	if err != nil {
		return time.Time{}, err
	}
	if event.Data == nil {
		dataJSON = []byte("{}")
	}
	rawJSON := []byte(event.RawPayload)
	if len(rawJSON) == 0 {
		rawJSON = []byte("{}")
	}

	now := time.Now().UTC()
	insert := "INSERT INTO webhook_deliveries (event_id, provider, event_type, unmapped, occurred_at, data, raw_payload, received_at) VALUES (" +
		s.ph(1) + "," + s.ph(2) + "," + s.ph(3) + "," + s.ph(4) + "," + s.ph(5) + "," + s.ph(6) + "," + s.ph(7) + "," + s.ph(8) + ")"

	args := []interface{}{
		event.ID,
		string(event.Provider),
		event.EventType,
		event.Unmapped,
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		string(dataJSON),
		string(rawJSON),
		now.Format(time.RFC3339Nano),
	}
	if _, err := s.db.ExecContext(ctx, insert, args...); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (s *SQLRepository) ListEvents(ctx context.Context, provider model.Provider, limit int) ([]model.WebhookEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	params := make([]interface{}, 0, 2)
	query := strings.Builder{}
	query.WriteString(`SELECT event_id, provider, event_type, unmapped, occurred_at, data, raw_payload FROM webhook_deliveries`)
	if provider != "" {
		params = append(params, string(provider))
		query.WriteString(` WHERE provider = ` + s.ph(len(params)))
	}
	params = append(params, limit)
	query.WriteString(` ORDER BY seq DESC LIMIT ` + s.ph(len(params)))

	rows, err := s.db.QueryContext(ctx, query.String(), params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.WebhookEvent, 0, limit)
	for rows.Next() {
		var (
			e          model.WebhookEvent
			prov       string
			occurredAt string
			data       string
			raw        string
		)
		if err := rows.Scan(&e.ID, &prov, &e.EventType, &e.Unmapped, &occurredAt, &data, &raw); err != nil {
			return nil, err
		}
		e.Provider = model.Provider(prov)
		if t, err := time.Parse(time.RFC3339Nano, occurredAt); err == nil {
			e.Timestamp = t.UTC()
		}
		if err := json.Unmarshal([]byte(data), &e.Data); err != nil {
			return nil, fmt.Errorf("corrupt data column for event %s: %w", e.ID, err)
		}
		e.RawPayload = json.RawMessage(raw)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLRepository) CountEvents(ctx context.Context, provider model.Provider) (int, error) {
	query := `SELECT COUNT(*) FROM webhook_deliveries`
	params := []interface{}{}
	if provider != "" {
		query += ` WHERE provider = ` + s.ph(1)
		params = append(params, string(provider))
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, params...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
