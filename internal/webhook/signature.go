package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
)

// VerifySignature checks a webhook signature header of the form
// "<algorithm>=<hex-digest>" against the keyed digest of the raw body.
// sha1 (X-Hub-Signature) and sha256 (X-Hub-Signature-256) are accepted.
// Verification runs on the raw bytes, before any JSON parsing.
func VerifySignature(body []byte, header, secret string) bool {
	algo, digest, found := strings.Cut(header, "=")
	if !found || digest == "" {
		return false
	}

	var newHash func() hash.Hash
	switch algo {
	case "sha1":
		newHash = sha1.New
	case "sha256":
		newHash = sha256.New
	default:
		return false
	}

	mac := hmac.New(newHash, []byte(secret))
	mac.Write(body)
	computed := hex.EncodeToString(mac.Sum(nil))

	// Hex comparison is case-sensitive; the platform sends lowercase.
	return hmac.Equal([]byte(computed), []byte(digest))
}

// signatureHeader returns the first present signature header value, preferring
// the sha256 variant.
func signatureHeader(get func(string) string) string {
	if v := get("X-Hub-Signature-256"); v != "" {
		return v
	}
	return get("X-Hub-Signature")
}
