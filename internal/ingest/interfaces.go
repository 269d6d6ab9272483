package ingest

import "hookgate/internal/model"

// HeaderReader abstracts header access so adapters stay decoupled from
// net/http.
type HeaderReader interface {
	Get(key string) string
}

// ProviderAdapter encapsulates exactly one provider's webhook contract:
// which headers it sends, how its signature is verified, and how its native
// event vocabulary maps onto the canonical taxonomy. Adapters are stateless
// and safe for concurrent use.
type ProviderAdapter interface {
	Provider() model.Provider

	// RequiredHeaders lists headers that must be present before the body is
	// read. OptionalHeaders are listed for the descriptor endpoint only.
	RequiredHeaders() []string
	OptionalHeaders() []string

	// Verify reports whether the signature headers authenticate body. It
	// must never panic on malformed input; malformed is simply false.
	Verify(headers HeaderReader, body []byte) bool

	// NativeType extracts the provider's native event type token, from a
	// header or a payload field depending on the provider.
	NativeType(headers HeaderReader, payload map[string]interface{}) string

	// CanonicalType resolves a native type through the adapter's mapping
	// table. The second result is false when no mapping exists.
	CanonicalType(native string) (string, bool)

	// Metadata returns header-derived enrichment merged into the event data,
	// such as the originating shop domain.
	Metadata(headers HeaderReader) map[string]string

	// CanonicalTypes lists the distinct canonical types the adapter can map
	// to, for the descriptor endpoint.
	CanonicalTypes() []string
}
