package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken returns an opaque token suitable for a server-side
// session key: 32 random bytes, hex encoded.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewCSRFToken returns an opaque anti-forgery token. A UUID is enough
// entropy here since the token is only compared, never derived from.
func NewCSRFToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
