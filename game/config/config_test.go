package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knight.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultFetchTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, 0, cfg.Fetch.Retries)
	assert.Equal(t, DefaultRetryDelay, cfg.Fetch.RetryDelay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
	assert.Equal(t, 24*time.Hour, cfg.Runs.TTL)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
board_api: https://example.com/board
commands_api: https://example.com/commands
fetch:
  timeout: 3s
  retries: 2
log:
  level: debug
  format: json
server:
  port: 9090
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/board", cfg.BoardAPI)
	assert.Equal(t, "https://example.com/commands", cfg.CommandsAPI)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "board_api: file-board\nfetch:\n  timeout: 3s\n")
	t.Setenv("BOARD_API", "http://env/board")
	t.Setenv("COMMANDS_API", "http://env/commands")
	t.Setenv("KNIGHT_FETCH_TIMEOUT", "7s")
	t.Setenv("KNIGHT_FETCH_RETRY_DELAY", "250ms")
	t.Setenv("KNIGHT_SERVER_PORT", "9999")
	t.Setenv("NGROK_AUTH_TOKEN", "secret")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://env/board", cfg.BoardAPI)
	assert.Equal(t, "http://env/commands", cfg.CommandsAPI)
	assert.Equal(t, 7*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetch.RetryDelay)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Ngrok.AuthToken)
}

func TestOverridesWin(t *testing.T) {
	t.Setenv("KNIGHT_LOG_LEVEL", "warn")

	cfg, err := Load("", map[string]interface{}{
		"log.level":   "error",
		"server.host": "0.0.0.0",
	})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("KNIGHT_FETCH_RETRIES", "-1")

	_, err := Load("", nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"BOARD_API":                "board_api",
		"KNIGHT_COMMANDS_API":      "commands_api",
		"KNIGHT_FETCH_TIMEOUT":     "fetch.timeout",
		"KNIGHT_RUNS_TTL":          "runs.ttl",
		"KNIGHT_FETCH_RETRY_DELAY": "fetch.retry_delay",
		"NGROK_DOMAIN":             "ngrok.domain",
		"PATH":                     "",
		"KNIGHT_":                  "",
	}

	for name, want := range tests {
		assert.Equal(t, want, envKey(name), name)
	}
}
