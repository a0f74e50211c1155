package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// SecretSize is the default number of random bytes in a generated secret
// (128 bits, 22 chars base64url).
const SecretSize = 16

// GenerateSecret returns size random bytes encoded as unpadded base64url.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateSecret is GenerateSecret that panics, for start-up paths.
func MustGenerateSecret(size int) string {
	s, err := GenerateSecret(size)
	if err != nil {
		panic(err)
	}
	return s
}

// FingerprintToken returns the base64url SHA-256 of token (43 chars). Session
// rows store the fingerprint of the issued bearer token, never the token.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// MatchesFingerprint reports in constant time whether token hashes to
// fingerprint.
func MatchesFingerprint(token, fingerprint string) bool {
	return subtle.ConstantTimeCompare([]byte(FingerprintToken(token)), []byte(fingerprint)) == 1
}
