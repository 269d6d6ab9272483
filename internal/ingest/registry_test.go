package ingest

import (
	"reflect"
	"testing"

	"hookgate/internal/model"
)

type stubAdapter struct {
	provider model.Provider
}

func (s stubAdapter) Provider() model.Provider                            { return s.provider }
func (s stubAdapter) RequiredHeaders() []string                           { return []string{"X-Stub-Signature"} }
func (s stubAdapter) OptionalHeaders() []string                           { return nil }
func (s stubAdapter) Verify(HeaderReader, []byte) bool                    { return true }
func (s stubAdapter) NativeType(HeaderReader, map[string]interface{}) string { return "stub" }
func (s stubAdapter) CanonicalType(native string) (string, bool)          { return native, true }
func (s stubAdapter) Metadata(HeaderReader) map[string]string             { return nil }
func (s stubAdapter) CanonicalTypes() []string                            { return []string{"stub"} }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.MustHaveProviders(); err == nil {
		t.Fatalf("empty registry must fail the readiness check")
	}

	r.Register(stubAdapter{provider: model.ProviderStorefront})
	r.Register(stubAdapter{provider: model.ProviderPayments})

	if _, err := r.Adapter(model.ProviderPayments); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if _, err := r.Adapter(model.ProviderRegistrar); err == nil {
		t.Fatalf("unregistered provider must error")
	}

	got := r.Providers()
	want := []model.Provider{model.ProviderPayments, model.ProviderStorefront}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if err := r.MustHaveProviders(); err != nil {
		t.Fatalf("populated registry must pass: %v", err)
	}
}
