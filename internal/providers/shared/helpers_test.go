package shared

import (
	"reflect"
	"testing"
	"time"
)

func TestStringField(t *testing.T) {
	payload := map[string]interface{}{
		"id":      float64(123),
		"name":    "widget",
		"blank":   "   ",
		"ignored": true,
	}
	if got := StringField(payload, "name"); got != "widget" {
		t.Fatalf("got %q", got)
	}
	if got := StringField(payload, "id"); got != "123" {
		t.Fatalf("numeric id rendered as %q", got)
	}
	if got := StringField(payload, "blank", "name"); got != "widget" {
		t.Fatalf("blank value should be skipped, got %q", got)
	}
	if got := StringField(payload, "missing", "ignored"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNonEmpty(t *testing.T) {
	if got := NonEmpty("  a  ", "b"); got != "a" {
		t.Fatalf("got %q", got)
	}
	if got := NonEmpty("  ", "b"); got != "b" {
		t.Fatalf("got %q", got)
	}
}

func TestParseTimeOrNow(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	if got := ParseTimeOrNow("2024-03-01T12:30:00Z"); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	before := time.Now().UTC()
	got := ParseTimeOrNow("not a timestamp")
	if got.Before(before.Add(-time.Second)) {
		t.Fatalf("unparseable input should fall back to now, got %v", got)
	}
}

func TestMappedValues(t *testing.T) {
	m := map[string]string{
		"orders/create":  "order.created",
		"orders/updated": "order.updated",
		"orders/edited":  "order.updated",
	}
	got := MappedValues(m)
	want := []string{"order.created", "order.updated"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
