package jwtx

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSymmetricKeyLength is the shortest HMAC key we accept (256 bits).
const MinSymmetricKeyLength = 32

var ErrWeakKey = fmt.Errorf("jwtx: symmetric key must be at least %d bytes", MinSymmetricKeyLength)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// HS256Signer signs tokens with HMAC-SHA256 over a shared symmetric key.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 creates an HS256 signer. The key is copied.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	s := &HS256Signer{key: bytes.Clone(key)}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.key)
}

// Validate does a quick sanity check on the key material.
func (s *HS256Signer) Validate() error {
	if s == nil || len(s.key) == 0 {
		return errors.New("jwtx: nil HMAC key")
	}
	if len(s.key) < MinSymmetricKeyLength {
		return ErrWeakKey
	}
	return nil
}
