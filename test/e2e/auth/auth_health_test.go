package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/gatekeep/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check endpoint.
func TestLivezEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies the readiness check reports its dependencies.
func TestReadyzEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthService(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "ok", health.Checks.Signer)
}
