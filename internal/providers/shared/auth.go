package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// ValidHexSignature checks an HMAC-SHA256 hex signature over the raw body.
// The header value may carry a "sha256=" prefix.
func ValidHexSignature(secret string, body []byte, header string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if parts := strings.SplitN(header, "=", 2); len(parts) == 2 && strings.EqualFold(parts[0], "sha256") {
		header = strings.TrimSpace(parts[1])
	}
	provided, err := hex.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}

// ValidBase64Signature checks an HMAC-SHA256 base64 signature over the raw
// body, the convention used by the storefront, POS, and plugin platforms.
func ValidBase64Signature(secret string, body []byte, header string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	provided, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
