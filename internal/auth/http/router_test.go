package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeep/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeep/internal/auth/service"
	"github.com/aussiebroadwan/gatekeep/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeep/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeep/pkg/jwtx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "gatekeep-test"
	testAudience = "gatekeep-api"
)

type testServer struct {
	router   *Router
	accounts *service.AccountService
	verifier *jwtx.HS256Verifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	hasher, err := cryptox.NewHasher([]byte("http-test-pepper"), cryptox.MinimumIterations)
	require.NoError(t, err)

	key := []byte(strings.Repeat("h", jwtx.MinSymmetricKeyLength))
	signer, err := jwtx.NewSignerHS256(key)
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256(key, jwtx.VerifyOptions{
		Issuer:   testIssuer,
		Audience: []string{testAudience},
	})

	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg)
	auth := &service.Authenticator{Store: s, Hasher: hasher, Metrics: metrics}
	accounts := &service.AccountService{Store: s, Hasher: hasher}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(verifier, signer, "test", s, logger)
	r.TokenService = &service.TokenService{
		Store:         s,
		Authenticator: auth,
		Generator:     cryptox.AlphabetGenerator{},
		Signer:        signer,
		Metrics:       metrics,
		Issuer:        testIssuer,
		Audience:      []string{testAudience},
	}
	r.AccountService = accounts
	r.Gatherer = reg
	r.SecureCookies = false
	r.ApplyRoutes()

	return &testServer{router: r, accounts: accounts, verifier: verifier}
}

func (ts *testServer) register(t *testing.T, email, password, role string) domain.Principal {
	t.Helper()

	res, err := ts.accounts.Register(context.Background(), email, []byte(password), role)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return res.Value
}

func (ts *testServer) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, m := range mutate {
		m(req)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T, email, password string) authsdk.TokenResponse {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/v1/auth/token", authsdk.TokenRequest{
		GrantType: authsdk.GrantTypePassword,
		Email:     email,
		Password:  password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok authsdk.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tok))
	return tok
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body authsdk.MessageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLivez(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body authsdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
	require.Equal(t, "test", body.Version)
	require.Nil(t, body.Checks)
}

func TestReadyz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body authsdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
	require.NotNil(t, body.Checks)
	require.Equal(t, "ok", body.Checks.Database)
	require.Equal(t, "ok", body.Checks.Signer)
}

func TestReadyz_DatabaseDown(t *testing.T) {
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	signer, err := jwtx.NewSignerHS256([]byte(strings.Repeat("r", jwtx.MinSymmetricKeyLength)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	ReadyzHandler(time.Now(), "test", s, signer).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body authsdk.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "degraded", body.Status)
	require.Equal(t, "error", body.Checks.Database)
	require.Equal(t, "ok", body.Checks.Signer)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "metrics@example.com", "password123", domain.RoleUser)
	ts.login(t, "metrics@example.com", "password123")

	rec := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `gatekeep_token_operations_total{operation="get_token",outcome="success"} 1`)
	require.Contains(t, rec.Body.String(), `gatekeep_authentications_total{status="ok"} 1`)
}
