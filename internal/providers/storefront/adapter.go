package storefront

import (
	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/providers/shared"
)

const (
	signatureHeader  = "X-Shopify-Hmac-Sha256"
	topicHeader      = "X-Shopify-Topic"
	shopDomainHeader = "X-Shopify-Shop-Domain"
)

var eventTypeMap = map[string]string{
	"orders/create":    "order.created",
	"orders/updated":   "order.updated",
	"orders/fulfilled": "order.fulfilled",
	"products/create":  "product.created",
	"products/update":  "product.updated",
}

// Adapter handles the storefront platform: base64 HMAC-SHA256 over the raw
// body, topic header for the native type, optional shop-domain enrichment.
type Adapter struct {
	Secret string
}

func NewAdapter(secret string) Adapter {
	return Adapter{Secret: secret}
}

func (a Adapter) Provider() model.Provider  { return model.ProviderStorefront }
func (a Adapter) RequiredHeaders() []string { return []string{signatureHeader, topicHeader} }
func (a Adapter) OptionalHeaders() []string { return []string{shopDomainHeader} }

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

func (a Adapter) Metadata(headers ingest.HeaderReader) map[string]string {
	shop := shared.NormalizeEventType(headers.Get(shopDomainHeader))
	if shop == "" {
		return nil
	}
	return map[string]string{"shop_domain": shop}
}

func (a Adapter) CanonicalTypes() []string { return shared.MappedValues(eventTypeMap) }
