package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// GenerateToken creates a cryptographically secure random token of the
// specified byte length, encoded as base64url without padding.
//
// Invite tokens use TokenSize256.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic BLAKE2b-256 fingerprint of a
// token, base64url encoded. Stores hold fingerprints rather than raw
// tokens so a leaked database cannot mint usable invites; lookups hash
// the presented token and match on the fingerprint column.
func FingerprintToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
