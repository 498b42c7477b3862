package utils

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// GenerateToken returns an opaque public invoice handle.
func GenerateToken() string {
	return uuid.NewString()
}

// GenerateSecret returns a random hex key suitable for HMAC signing.
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
