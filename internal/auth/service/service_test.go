package service

import (
	"context"
	"strings"
	"testing"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/sqlstore"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "gatekeep-test"
	testAudience = "gatekeep-api"
)

var testSigningKey = []byte(strings.Repeat("s", jwtx.MinSymmetricKeyLength))

type fixture struct {
	store    *sqlstore.Store
	hasher   *cryptox.Hasher
	auth     *Authenticator
	tokens   *TokenService
	accounts *AccountService
	verifier *jwtx.HS256Verifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	hasher, err := cryptox.NewHasher([]byte("service-test-pepper"), cryptox.MinimumIterations)
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256(testSigningKey)
	require.NoError(t, err)

	auth := &Authenticator{Store: s, Hasher: hasher}

	return &fixture{
		store:  s,
		hasher: hasher,
		auth:   auth,
		tokens: &TokenService{
			Store:         s,
			Authenticator: auth,
			Generator:     cryptox.AlphabetGenerator{},
			Signer:        signer,
			Issuer:        testIssuer,
			Audience:      []string{testAudience},
		},
		accounts: &AccountService{Store: s, Hasher: hasher},
		verifier: jwtx.NewVerifierHS256(testSigningKey, jwtx.VerifyOptions{
			Issuer:   testIssuer,
			Audience: []string{testAudience},
		}),
	}
}

// register creates an account and returns its principal.
func (f *fixture) register(t *testing.T, email, password, role string) domain.Principal {
	t.Helper()

	res, err := f.accounts.Register(context.Background(), email, []byte(password), role)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return res.Value
}

func (f *fixture) countRefreshTokens(t *testing.T) int {
	t.Helper()

	var n int
	require.NoError(t, f.store.DB().QueryRow(`SELECT COUNT(*) FROM refresh_tokens`).Scan(&n))
	return n
}

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) Alg() string { return "HS256" }

func (m *mockSigner) Sign(c jwtx.Claims) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}

func (m *mockSigner) Validate() error { return nil }
