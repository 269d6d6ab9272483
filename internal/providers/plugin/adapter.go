package plugin

import (
	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/providers/shared"
)

const (
	signatureHeader = "X-WC-Webhook-Signature"
	topicHeader     = "X-WC-Webhook-Topic"
)

var eventTypeMap = map[string]string{
	"order.created":   "order.created",
	"order.updated":   "order.updated",
	"product.created": "product.created",
	"product.updated": "product.updated",
}

// Adapter handles the commerce plugin platform: base64 HMAC-SHA256 over the
// raw body plus a topic header carrying the native type.
type Adapter struct {
	Secret string
}

func NewAdapter(secret string) Adapter {
	return Adapter{Secret: secret}
}

func (a Adapter) Provider() model.Provider  { return model.ProviderPluginPlatform }
func (a Adapter) RequiredHeaders() []string { return []string{signatureHeader, topicHeader} }
func (a Adapter) OptionalHeaders() []string { return nil }

func (a Adapter) Verify(headers ingest.HeaderReader, body []byte) bool {
	return VerifySignature(body, headers.Get(signatureHeader), a.Secret)
}

func VerifySignature(body []byte, header, secret string) bool {
	return shared.ValidBase64Signature(secret, body, header)
}

func (a Adapter) NativeType(headers ingest.HeaderReader, _ map[string]interface{}) string {
	return shared.NormalizeEventType(headers.Get(topicHeader))
}

func (a Adapter) CanonicalType(native string) (string, bool) {
	c, ok := eventTypeMap[native]
	return c, ok
}

func (a Adapter) Metadata(_ ingest.HeaderReader) map[string]string { return nil }

func (a Adapter) CanonicalTypes() []string { return shared.MappedValues(eventTypeMap) }
