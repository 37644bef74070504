package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "LOG_LEVEL", "FEED_BASE_URL", "FEED_GROUP", "FEED_TIMEOUT", "NATS_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 80, cfg.Feed.Group)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.False(t, cfg.NATS.Enabled)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
feed:
  base_url: http://feed.local
  group: 81
  timeout: 3s
log:
  level: debug
`), 0o600))

	clearEnv(t)
	t.Setenv("FEED_TIMEOUT", "5s")
	t.Setenv("NATS_URL", "nats://nats:4222")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://feed.local", cfg.Feed.BaseURL)
	assert.Equal(t, 81, cfg.Feed.Group)
	assert.Equal(t, 5*time.Second, cfg.Feed.Timeout)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Equal(t, "debug", cfg.logLevel().String())
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o600))
	clearEnv(t)

	_, err := loadConfig(path)
	assert.Error(t, err)

	t.Setenv("PORT", "not-a-port")
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o600))
	clearEnv(t)

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveFeedTimeout(t *testing.T) {
	for _, value := range []string{"0s", "-5s"} {
		t.Run(value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("FEED_TIMEOUT", value)

			_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}
