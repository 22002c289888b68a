package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// inTempDir runs the test from an empty directory so no stray .env or
// config.yaml is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultsWithEnvSecret(t *testing.T) {
	inTempDir(t)
	t.Setenv("GIFTCARD_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "giftcard.db", cfg.Database.DSN)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5, cfg.Ledger.RetryAttempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Ledger.RetryBaseDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Ledger.RetryMaxDelay)
	assert.Equal(t, testSecret, cfg.Auth.JWTSecret)
}

func TestLoad_YAMLFileThenEnvOverride(t *testing.T) {
	dir := inTempDir(t)
	yaml := []byte(`
server:
  addr: ":9090"
database:
  driver: postgres
  dsn: "host=db user=pos dbname=pos"
auth:
  jwt_secret: "` + testSecret + `"
  session_ttl: 30m
ledger:
  retry_attempts: 3
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("GIFTCARD_SERVER_ADDR", ":7070")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, 3, cfg.Ledger.RetryAttempts)
}

func TestLoad_DotEnvIsRead(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GIFTCARD_AUTH_JWT_SECRET="+testSecret+"\nGIFTCARD_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("GIFTCARD_AUTH_JWT_SECRET")
		os.Unsetenv("GIFTCARD_LOG_LEVEL")
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingSecretFailsValidation(t *testing.T) {
	inTempDir(t)
	t.Setenv("GIFTCARD_AUTH_JWT_SECRET", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Driver: "mysql"},
		Ledger:   LedgerConfig{RetryAttempts: 0, RetryBaseDelay: time.Second, RetryMaxDelay: time.Millisecond},
	}

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"database.driver", "database.dsn", "jwt_secret", "session_ttl", "retry_attempts", "retry delays", "request_timeout"} {
		assert.Contains(t, err.Error(), want)
	}
}
