package registrar

import (
	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/providers/shared"
)

const (
	signatureHeader = "X-Registrar-Signature"
	eventTypeHeader = "X-Registrar-Event"
)

var eventTypeMap = map[string]string{
	"DOMAIN_PURCHASED":    "domain.registered",
	"HOSTING_PROVISIONED": "hosting.provisioned",
}

// Adapter handles the hosting/domain registrar. The vendor's signing scheme
// is an opaque predicate from the endpoint's perspective; this realization
// uses the sha256=<hex> HMAC form over the raw body so swapping in the
// vendor's documented math touches VerifySignature only.
type Adapter struct {
	Secret string
}

func NewAdapter(secret string) Adapter {
	return Adapter{Secret: secret}
}

func (a Adapter) Provider() model.Provider  { return model.ProviderRegistrar }
func (a Adapter) RequiredHeaders() []string { return []string{signatureHeader, eventTypeHeader} }
func (a Adapter) OptionalHeaders() []string { return nil }

func (a Adapter) Verify(headers ingest.HeaderReader, body []byte) bool {
	return VerifySignature(body, headers.Get(signatureHeader), a.Secret)
}

func VerifySignature(body []byte, header, secret string) bool {
	return shared.ValidHexSignature(secret, body, header)
}

func (a Adapter) NativeType(headers ingest.HeaderReader, _ map[string]interface{}) string {
	return shared.NormalizeEventType(headers.Get(eventTypeHeader))
}

func (a Adapter) CanonicalType(native string) (string, bool) {
	c, ok := eventTypeMap[native]
	return c, ok
}

func (a Adapter) Metadata(_ ingest.HeaderReader) map[string]string { return nil }

func (a Adapter) CanonicalTypes() []string { return shared.MappedValues(eventTypeMap) }
