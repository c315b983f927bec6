package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("PASSWORD_HASH_COST", "11")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("AUTH_RATE_LIMIT", "2.5")
	t.Setenv("S3_BUCKET", "avatars")

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, parseEnv(cfg, ""))

	assert.Equal(t, ":3000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 12*time.Hour, cfg.SessionTokenValidityDuration)
	assert.Equal(t, 11, cfg.PasswordHashCost)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.AuthRateLimit)
	assert.True(t, cfg.UploadsEnabled())
}

func TestParseEnv_HTTPAddrWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:4000")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, ""))
	assert.Equal(t, "127.0.0.1:4000", cfg.EndpointAddrHTTP)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("MONGO_DATABASE")
	t.Cleanup(func() { os.Unsetenv("MONGO_DATABASE") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_DATABASE=from_dotenv\nJWT_SECRET=dotenv\n"), 0o600))
	t.Setenv("JWT_SECRET", "process-wins")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, path))

	assert.Equal(t, "from_dotenv", cfg.MongoDatabase)
	assert.Equal(t, "process-wins", cfg.SecretKey)
}

func TestParseEnv_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	cfg := &Config{}
	require.NoError(t, parseEnv(cfg, filepath.Join(t.TempDir(), "absent.env")))
}

func TestParseEnv_BadValues(t *testing.T) {
	for _, kv := range [][2]string{
		{"SESSION_TTL", "tomorrow"},
		{"PASSWORD_HASH_COST", "ten"},
		{"COOKIE_SECURE", "maybe"},
		{"AUTH_RATE_LIMIT", "fast"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			assert.Error(t, parseEnv(&Config{}, ""))
		})
	}
}
