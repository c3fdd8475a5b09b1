package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// NewResetToken generates a random password-reset token.
func NewResetToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
