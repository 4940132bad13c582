package cryptox

import (
	"bytes"
	"crypto/rand"
	"crypto/sha1" // #nosec G505 - PBKDF2-HMAC-SHA1 keeps stored hashes compatible
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/pbkdf2"
)

// Configuration for PBKDF2 hashing.
const (
	SaltLength        = 16    // Length of the random salt
	HashLength        = 20    // Length of the derived digest (SHA-1 block output)
	MinimumIterations = 10000 // Lowest iteration count we accept
)

var (
	ErrInvalidInput  = errors.New("cryptox: password must not be empty")
	ErrUseAfterFlush = errors.New("cryptox: password hash used after flush")
	ErrInvalidHash   = errors.New("cryptox: invalid password hash")
)

// PasswordHash is a salted PBKDF2 digest. It never holds plaintext and is
// immutable until Flush is called.
type PasswordHash struct {
	mu      sync.Mutex
	salt    []byte
	digest  []byte
	flushed bool
}

// NewPasswordHash rebuilds a hash record from stored salt and digest bytes.
// The inputs are copied.
func NewPasswordHash(salt, digest []byte) (*PasswordHash, error) {
	if len(salt) != SaltLength {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidHash, SaltLength, len(salt))
	}
	if len(digest) != HashLength {
		return nil, fmt.Errorf("%w: digest must be %d bytes, got %d", ErrInvalidHash, HashLength, len(digest))
	}

	return &PasswordHash{
		salt:   bytes.Clone(salt),
		digest: bytes.Clone(digest),
	}, nil
}

// Salt returns a copy of the salt, or nil once flushed.
func (p *PasswordHash) Salt() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.flushed {
		return nil
	}
	return bytes.Clone(p.salt)
}

// Digest returns a copy of the derived digest, or nil once flushed.
func (p *PasswordHash) Digest() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.flushed {
		return nil
	}
	return bytes.Clone(p.digest)
}

// Flushed reports whether Flush has been called.
func (p *PasswordHash) Flushed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushed
}

// Flush zeroes the salt and digest and makes the hash permanently unusable.
// Calling it more than once is harmless.
func (p *PasswordHash) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	Wipe(p.salt)
	Wipe(p.digest)
	p.flushed = true
}

// Hasher derives and verifies password hashes. The pepper is prepended to
// every password before derivation.
type Hasher struct {
	Pepper     []byte
	Iterations int
}

// NewHasher builds a Hasher, refusing iteration counts below MinimumIterations.
func NewHasher(pepper []byte, iterations int) (*Hasher, error) {
	if iterations < MinimumIterations {
		return nil, fmt.Errorf("cryptox: iterations must be at least %d, got %d", MinimumIterations, iterations)
	}
	return &Hasher{Pepper: bytes.Clone(pepper), Iterations: iterations}, nil
}

// Create hashes password with a fresh random salt.
func (h *Hasher) Create(password []byte) (*PasswordHash, error) {
	if len(bytes.TrimSpace(password)) == 0 {
		return nil, ErrInvalidInput
	}

	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("cryptox: failed to generate salt: %w", err)
	}

	return &PasswordHash{
		salt:   salt,
		digest: h.derive(password, salt),
	}, nil
}

// Verify reports whether candidate matches hash. The comparison runs in
// constant time and the intermediate digest is wiped before returning.
func (h *Hasher) Verify(hash *PasswordHash, candidate []byte) (bool, error) {
	hash.mu.Lock()
	defer hash.mu.Unlock()

	if hash.flushed {
		return false, ErrUseAfterFlush
	}

	computed := h.derive(candidate, hash.salt)
	defer Wipe(computed)

	return subtle.ConstantTimeCompare(computed, hash.digest) == 1, nil
}

func (h *Hasher) derive(password, salt []byte) []byte {
	input := make([]byte, 0, len(h.Pepper)+len(password))
	input = append(input, h.Pepper...)
	input = append(input, password...)
	defer Wipe(input)

	return pbkdf2.Key(input, salt, h.Iterations, HashLength, sha1.New)
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
