package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"math/big"
)

// DefaultAlphabet is the character set used for refresh token codes.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AlphabetGenerator produces random strings drawn uniformly from Alphabet
// using crypto/rand. The zero value uses DefaultAlphabet.
type AlphabetGenerator struct {
	Alphabet string
}

// Generate returns a random string of exactly length characters.
func (g AlphabetGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("cryptox: code length must be positive, got %d", length)
	}

	alphabet := g.Alphabet
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	limit := big.NewInt(int64(len(alphabet)))

	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("cryptox: failed to generate random code: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Refresh codes are stored by fingerprint so the database never holds a
// redeemable value.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
