package payments

import (
	"time"

	"hookgate/internal/ingest"
	"hookgate/internal/model"
	"hookgate/internal/providers/shared"

	"github.com/stripe/stripe-go/v74/webhook"
)

const (
	signatureHeader  = "Stripe-Signature"
	defaultTolerance = 5 * time.Minute
)

var eventTypeMap = map[string]string{
	"payment_intent.succeeded":      "payment.success",
	"payment_intent.payment_failed": "payment.failed",
	"payment_intent.created":        "payment.created",
	"charge.succeeded":              "payment.success",
}

// Adapter handles the payments processor's combined timestamp+signature
// scheme (t=...,v1=... over "{timestamp}.{body}").
type Adapter struct {
	Secret    string
	Tolerance time.Duration
}

func NewAdapter(secret string, tolerance time.Duration) Adapter {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return Adapter{Secret: secret, Tolerance: tolerance}
}

func (a Adapter) Provider() model.Provider  { return model.ProviderPayments }
func (a Adapter) RequiredHeaders() []string { return []string{signatureHeader} }
func (a Adapter) OptionalHeaders() []string { return nil }

func (a Adapter) Verify(headers ingest.HeaderReader, body []byte) bool {
	return VerifySignature(body, headers.Get(signatureHeader), a.Secret, a.Tolerance)
}

// VerifySignature recomputes HMAC-SHA256(secret, "{timestamp}.{body}") and
// compares against v1, rejecting timestamps outside the tolerance window.
// Malformed headers are false, never an error.
func VerifySignature(body []byte, header, secret string, tolerance time.Duration) bool {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return webhook.ValidatePayloadWithTolerance(body, header, secret, tolerance) == nil
}

func (a Adapter) NativeType(_ ingest.HeaderReader, payload map[string]interface{}) string {
	return shared.StringField(payload, "type")
}

func (a Adapter) CanonicalType(native string) (string, bool) {
	c, ok := eventTypeMap[native]
	return c, ok
}

func (a Adapter) Metadata(_ ingest.HeaderReader) map[string]string { return nil }

func (a Adapter) CanonicalTypes() []string { return shared.MappedValues(eventTypeMap) }
