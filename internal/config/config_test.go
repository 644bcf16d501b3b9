package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HTTP_ADDR", "ALLOWED_ORIGINS", "STORAGE", "DATABASE_URL", "REDIS_URL", "MIGRATE_ON_START",
		"JWT_SECRET", "JWT_EXPIRATION", "JWT_EXPIRY", "BCRYPT_COST",
		"LOGIN_MAX_ATTEMPTS", "LOGIN_LOCKOUT", "USER_PURGE_AFTER", "USER_PURGE_INTERVAL",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginLockout)
	assert.Equal(t, time.Hour, cfg.UserPurgeInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.MigrateOnStart)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("JWT_EXPIRATION", "3600000")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("LOGIN_LOCKOUT", "1m")
	t.Setenv("STORAGE", "Memory")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, time.Minute, cfg.LoginLockout)
	assert.Equal(t, StorageMemory, cfg.Storage)
}

func TestLoad_JWTExpiryDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRY", "90m")

	assert.Equal(t, 90*time.Minute, Load().JWTExpiry)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRATION", "-5")
	t.Setenv("BCRYPT_COST", "99")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "abc")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
}

func TestValidate_RejectsBadJWTExpiry(t *testing.T) {
	for _, tc := range []struct{ key, value string }{
		{"JWT_EXPIRATION", "-5"},
		{"JWT_EXPIRATION", "soon"},
		{"JWT_EXPIRY", "0s"},
		{"JWT_EXPIRY", "forever"},
	} {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", strings.Repeat("k", MinJWTSecretLength))
			t.Setenv(tc.key, tc.value)

			err := Load().Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestValidate_AcceptsGoodJWTExpiry(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", strings.Repeat("k", MinJWTSecretLength))
	t.Setenv("JWT_EXPIRY", "2h")

	cfg := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWTExpiry: time.Hour, Storage: StorageMemory}
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "short"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")

	cfg.JWTSecret = strings.Repeat("k", MinJWTSecretLength)
	require.NoError(t, cfg.Validate())

	cfg.Storage = "mysql"
	require.Error(t, cfg.Validate())

	cfg.Storage = StoragePostgres
	cfg.JWTExpiry = 0
	require.Error(t, cfg.Validate())
}
