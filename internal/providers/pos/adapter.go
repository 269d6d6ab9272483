package pos

import (
	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/providers/shared"
)

const signatureHeader = "X-Square-Hmacsha256-Signature"

// The POS platform's native vocabulary already matches the canonical
// taxonomy; the table is still consulted so unknown natives get flagged.
var eventTypeMap = map[string]string{
	"payment.created": "payment.created",
	"payment.updated": "payment.updated",
	"order.created":   "order.created",
	"order.updated":   "order.updated",
}

// Adapter handles the point-of-sale platform: base64 HMAC-SHA256 over the
// raw body in a single signature header, native type in the payload.
type Adapter struct {
	Secret string
}

func NewAdapter(secret string) Adapter {
	return Adapter{Secret: secret}
}

func (a Adapter) Provider() model.Provider  { return model.ProviderPOS }
func (a Adapter) RequiredHeaders() []string { return []string{signatureHeader} }
func (a Adapter) OptionalHeaders() []string { return nil }

func (a Adapter) Verify(headers ingest.HeaderReader, body []byte) bool {
	return VerifySignature(body, headers.Get(signatureHeader), a.Secret)
}

func VerifySignature(body []byte, header, secret string) bool {
	return shared.ValidBase64Signature(secret, body, header)
}

func (a Adapter) NativeType(_ ingest.HeaderReader, payload map[string]interface{}) string {
	return shared.StringField(payload, "type", "event_type")
}

func (a Adapter) CanonicalType(native string) (string, bool) {
	c, ok := eventTypeMap[native]
	return c, ok
}

func (a Adapter) Metadata(_ ingest.HeaderReader) map[string]string { return nil }

func (a Adapter) CanonicalTypes() []string { return shared.MappedValues(eventTypeMap) }
