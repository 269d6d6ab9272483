package storefront

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
	a := NewAdapter("shpss_secret")
	body := []byte(`{"id":123,"foo":"bar"}`)

	h := http.Header{}
	h.Set("X-Shopify-Hmac-Sha256", sign("shpss_secret", body))
	if !a.Verify(h, body) {
		t.Fatalf("valid signature must verify")
	}

	h.Set("X-Shopify-Hmac-Sha256", sign("wrong", body))
	if a.Verify(h, body) {
		t.Fatalf("signature under another secret must not verify")
	}
	h.Set("X-Shopify-Hmac-Sha256", "")
	if a.Verify(h, body) {
		t.Fatalf("empty signature must not verify")
	}
}

func TestTopicMapping(t *testing.T) {
	a := NewAdapter("s")
	if a.Provider() != model.ProviderStorefront {
		t.Fatalf("unexpected provider %q", a.Provider())
	}

	h := http.Header{}
	h.Set("X-Shopify-Topic", "orders/create")
	if got := a.NativeType(h, nil); got != "orders/create" {
		t.Fatalf("got native %q", got)
	}

	cases := map[string]string{
		"orders/create":    "order.created",
		"orders/updated":   "order.updated",
		"orders/fulfilled": "order.fulfilled",
		"products/create":  "product.created",
		"products/update":  "product.updated",
	}
	for native, want := range cases {
		got, ok := a.CanonicalType(native)
		if !ok || got != want {
			t.Fatalf("CanonicalType(%q) = %q, %v; want %q", native, got, ok, want)
		}
	}
	if _, ok := a.CanonicalType("checkouts/create"); ok {
		t.Fatalf("unknown topic must report ok=false")
	}
}

func TestMetadata(t *testing.T) {
	a := NewAdapter("s")
	h := http.Header{}
	if md := a.Metadata(h); md != nil {
		t.Fatalf("no shop domain should yield nil metadata, got %v", md)
	}
	h.Set("X-Shopify-Shop-Domain", "example.myshopify.com")
	md := a.Metadata(h)
	if md["shop_domain"] != "example.myshopify.com" {
		t.Fatalf("got metadata %v", md)
	}
}
