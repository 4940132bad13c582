package app

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var validKey = strings.Repeat("k", 32)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", validKey)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "gatekeep-auth", cfg.Issuer)
	require.Equal(t, "gatekeep-api", cfg.Audience)
	require.Equal(t, 20*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 64, cfg.RefreshTokenLength)
	require.Equal(t, 10000, cfg.HashIterations)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.True(t, cfg.CookieSecure)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", validKey)
	t.Setenv("AUTH_ACCESS_TOKEN_TTL", "5m")
	t.Setenv("AUTH_REFRESH_TOKEN_TTL", "90") // minutes
	t.Setenv("AUTH_REFRESH_TOKEN_LENGTH", "32")
	t.Setenv("AUTH_COOKIE_SECURE", "false")
	t.Setenv("AUTH_DATABASE_DRIVER", "Postgres")
	t.Setenv("AUTH_DATABASE_URL", "postgres://localhost/gatekeep")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 90*time.Minute, cfg.RefreshTokenTTL)
	require.Equal(t, 32, cfg.RefreshTokenLength)
	require.False(t, cfg.CookieSecure)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{
			name: "missing signing key",
			env:  map[string]string{},
			want: []string{"AUTH_SIGNING_KEY is required"},
		},
		{
			name: "short signing key",
			env:  map[string]string{"AUTH_SIGNING_KEY": "short"},
			want: []string{"AUTH_SIGNING_KEY must be at least 32 bytes"},
		},
		{
			name: "bad duration",
			env:  map[string]string{"AUTH_SIGNING_KEY": validKey, "AUTH_ACCESS_TOKEN_TTL": "soon"},
			want: []string{`AUTH_ACCESS_TOKEN_TTL: "soon" is not a duration`},
		},
		{
			name: "refresh length out of range",
			env:  map[string]string{"AUTH_SIGNING_KEY": validKey, "AUTH_REFRESH_TOKEN_LENGTH": "8"},
			want: []string{"AUTH_REFRESH_TOKEN_LENGTH must be between 16 and 512"},
		},
		{
			name: "weak iterations",
			env:  map[string]string{"AUTH_SIGNING_KEY": validKey, "AUTH_HASH_ITERATIONS": "1000"},
			want: []string{"AUTH_HASH_ITERATIONS must be at least 10000"},
		},
		{
			name: "postgres without url",
			env:  map[string]string{"AUTH_SIGNING_KEY": validKey, "AUTH_DATABASE_DRIVER": "postgres"},
			want: []string{"AUTH_DATABASE_URL is required"},
		},
		{
			name: "unknown driver",
			env:  map[string]string{"AUTH_SIGNING_KEY": validKey, "AUTH_DATABASE_DRIVER": "oracle"},
			want: []string{`AUTH_DATABASE_DRIVER "oracle" is not supported`},
		},
		{
			name: "every problem is reported",
			env:  map[string]string{"PORT": "http", "AUTH_COOKIE_SECURE": "maybe"},
			want: []string{
				"AUTH_SIGNING_KEY is required",
				`PORT: "http" is not an integer`,
				`AUTH_COOKIE_SECURE: "maybe" is not a boolean`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AUTH_SIGNING_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			for _, w := range tt.want {
				require.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoadAdminConfig_NoSigningKey(t *testing.T) {
	t.Setenv("AUTH_SIGNING_KEY", "")

	cfg, err := LoadAdminConfig()
	require.NoError(t, err)
	require.Empty(t, cfg.SigningKey)

	t.Setenv("AUTH_DATABASE_DRIVER", "postgres")
	_, err = LoadAdminConfig()
	require.ErrorContains(t, err, "AUTH_DATABASE_URL is required")
}
