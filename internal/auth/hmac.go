package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignBase64 computes a base64 encoded HMAC-SHA256 signature of msg.
func SignBase64(secret string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify validates a base64 signature using HMAC-SHA256. The comparison
// is constant time.
func Verify(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	sigBytes, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sigBytes)
}
