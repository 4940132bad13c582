package cryptox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher([]byte("test-pepper"), MinimumIterations)
	require.NoError(t, err)
	return h
}

func TestNewHasher_RejectsLowIterations(t *testing.T) {
	_, err := NewHasher([]byte("pepper"), MinimumIterations-1)
	require.Error(t, err)

	h, err := NewHasher([]byte("pepper"), MinimumIterations)
	require.NoError(t, err)
	require.Equal(t, MinimumIterations, h.Iterations)
}

func TestCreate(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"padded password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Create([]byte(tt.password))
			require.NoError(t, err)
			require.Len(t, hash.Salt(), SaltLength)
			require.Len(t, hash.Digest(), HashLength)

			ok, err := h.Verify(hash, []byte(tt.password))
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	h := newTestHasher(t)

	for _, pw := range []string{"", "   ", "\t\n"} {
		hash, err := h.Create([]byte(pw))
		require.ErrorIs(t, err, ErrInvalidInput)
		require.Nil(t, hash)
	}
}

func TestCreate_UniqueSalts(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Create([]byte("samepassword"))
	require.NoError(t, err)
	b, err := h.Create([]byte("samepassword"))
	require.NoError(t, err)

	require.NotEqual(t, a.Salt(), b.Salt(), "salts should differ")
	require.NotEqual(t, a.Digest(), b.Digest(), "digests should differ due to unique salts")
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Create([]byte("correct-password"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"similar password", "correct-passwor"},
		{"very long", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(hash, []byte(tt.candidate))
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	h := newTestHasher(t)
	other, err := NewHasher([]byte("another-pepper"), MinimumIterations)
	require.NoError(t, err)

	hash, err := h.Create([]byte("secret"))
	require.NoError(t, err)

	ok, err := other.Verify(hash, []byte("secret"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFlush(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Create([]byte("secret"))
	require.NoError(t, err)

	hash.Flush()
	require.True(t, hash.Flushed())
	require.Nil(t, hash.Salt())
	require.Nil(t, hash.Digest())

	// Internal buffers are zeroed, not just hidden
	require.True(t, bytes.Equal(hash.salt, make([]byte, SaltLength)))
	require.True(t, bytes.Equal(hash.digest, make([]byte, HashLength)))

	ok, err := h.Verify(hash, []byte("secret"))
	require.ErrorIs(t, err, ErrUseAfterFlush)
	require.False(t, ok)

	// Second flush is a no-op
	require.NotPanics(t, hash.Flush)
}

func TestNewPasswordHash(t *testing.T) {
	h := newTestHasher(t)

	original, err := h.Create([]byte("secret"))
	require.NoError(t, err)

	t.Run("round trips stored bytes", func(t *testing.T) {
		restored, err := NewPasswordHash(original.Salt(), original.Digest())
		require.NoError(t, err)

		ok, err := h.Verify(restored, []byte("secret"))
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("copies its inputs", func(t *testing.T) {
		salt := original.Salt()
		restored, err := NewPasswordHash(salt, original.Digest())
		require.NoError(t, err)

		Wipe(salt)
		require.Equal(t, original.Salt(), restored.Salt())
	})

	t.Run("rejects bad lengths", func(t *testing.T) {
		_, err := NewPasswordHash(make([]byte, SaltLength-1), make([]byte, HashLength))
		require.ErrorIs(t, err, ErrInvalidHash)

		_, err = NewPasswordHash(make([]byte, SaltLength), make([]byte, HashLength+1))
		require.ErrorIs(t, err, ErrInvalidHash)
	})
}

func TestWipe(t *testing.T) {
	b := []byte("sensitive")
	Wipe(b)
	require.Equal(t, make([]byte, len("sensitive")), b)

	require.NotPanics(t, func() { Wipe(nil) })
}
