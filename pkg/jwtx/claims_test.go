package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := jwtx.NewAccessClaims(
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "a@example.com", "admin",
		15*time.Minute, "gatekeep", []string{"api"}, now,
	)

	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", c.Subject)
	require.Equal(t, c.Subject, c.AccountID)
	require.Equal(t, "a@example.com", c.Email)
	require.Equal(t, "admin", c.Role)
	require.Equal(t, "gatekeep", c.Issuer)
	require.Equal(t, jwt.ClaimStrings{"api"}, c.Audience)
	require.True(t, c.IssuedAt.Equal(now))
	require.True(t, c.NotBefore.Equal(now))
	require.True(t, c.Expiry().Equal(now.Add(15*time.Minute)))
	require.NotEmpty(t, c.ID)

	other := jwtx.NewAccessClaims(c.Subject, c.Email, c.Role, time.Minute, "", nil, now)
	require.NotEqual(t, c.ID, other.ID, "jti must be unique per token")
}

func TestExpiry_Unset(t *testing.T) {
	require.True(t, (&jwtx.Claims{}).Expiry().IsZero())
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Issuer: "gatekeep"}}

	tests := []struct {
		name     string
		expected string
		err      error
	}{
		{"matching", "gatekeep", nil},
		{"nothing expected", "", nil},
		{"mismatched", "someone-else", jwtx.ErrIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, c.ValidateIssuer(tt.expected), tt.err)
		})
	}
}

func TestValidateAudience(t *testing.T) {
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Audience: []string{"api", "console"}}}

	tests := []struct {
		name     string
		expected []string
		err      error
	}{
		{"single match", []string{"api"}, nil},
		{"any of several", []string{"billing", "console"}, nil},
		{"no match", []string{"billing"}, jwtx.ErrAudience},
		{"nothing expected", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, c.ValidateAudience(tt.expected), tt.err)
		})
	}
}

func TestValidateExpiryWithLeeway(t *testing.T) {
	now := time.Now().UTC()
	at := func(d time.Duration) *jwt.NumericDate { return jwt.NewNumericDate(now.Add(d)) }

	tests := []struct {
		name   string
		exp    *jwt.NumericDate
		nbf    *jwt.NumericDate
		leeway time.Duration
		err    error
	}{
		{"valid", at(time.Minute), nil, 0, nil},
		{"expired", at(-time.Minute), nil, 0, jwtx.ErrExpired},
		{"not yet valid", nil, at(time.Minute), 0, jwtx.ErrNotYetValid},
		{"no exp or nbf", nil, nil, 0, nil},
		{"expired within leeway", at(-10 * time.Second), nil, 30 * time.Second, nil},
		{"expired beyond leeway", at(-2 * time.Minute), nil, 30 * time.Second, jwtx.ErrExpired},
		{"nbf within leeway", nil, at(10 * time.Second), 30 * time.Second, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: tt.exp, NotBefore: tt.nbf}}
			require.ErrorIs(t, c.ValidateExpiryWithLeeway(tt.leeway), tt.err)
			if tt.leeway == 0 {
				require.ErrorIs(t, c.ValidateExpiry(), tt.err)
			}
		})
	}
}
