package plugin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"

	"hookgate/internal/model"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	a := NewAdapter("wc_secret")
	body := []byte(`{"id":42,"status":"processing"}`)

	h := http.Header{}
	h.Set("X-WC-Webhook-Signature", sign("wc_secret", body))
	if !a.Verify(h, body) {
		t.Fatalf("valid signature must verify")
	}
	h.Set("X-WC-Webhook-Signature", sign("other", body))
	if a.Verify(h, body) {
		t.Fatalf("wrong secret must not verify")
	}
}

func TestTopicMapping(t *testing.T) {
	a := NewAdapter("s")
	if a.Provider() != model.ProviderPluginPlatform {
		t.Fatalf("unexpected provider %q", a.Provider())
	}

	h := http.Header{}
	h.Set("X-WC-Webhook-Topic", "order.updated")
	if got := a.NativeType(h, nil); got != "order.updated" {
		t.Fatalf("got native %q", got)
	}

	for _, native := range []string{"order.created", "order.updated", "product.created", "product.updated"} {
		got, ok := a.CanonicalType(native)
		if !ok || got != native {
			t.Fatalf("CanonicalType(%q) = %q, %v", native, got, ok)
		}
	}
	if _, ok := a.CanonicalType("coupon.created"); ok {
		t.Fatalf("unknown topic must report ok=false")
	}
}
