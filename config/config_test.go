package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etnz/statement/config"
)

var variables = []string{"IBKR_LOG_LEVEL", "IBKR_LOG_FORMAT", "IBKR_NAV_TOLERANCE", "IBKR_STRICT"}

// clearEnv unsets every variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range variables {
		t.Setenv(v, "") // restores the original value on cleanup
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err, "Load should not return an error when using default values")
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.NAVTolerance.Equal(decimal.RequireFromString("0.01")), "NAVTolerance = %s", cfg.NAVTolerance)
	assert.False(t, cfg.Strict)
}

func TestLoad_Success(t *testing.T) {
	clearEnv(t)
	t.Setenv("IBKR_LOG_LEVEL", "debug")
	t.Setenv("IBKR_LOG_FORMAT", "json")
	t.Setenv("IBKR_NAV_TOLERANCE", "0.5")
	t.Setenv("IBKR_STRICT", "true")

	cfg, err := config.Load()

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.NAVTolerance.Equal(decimal.RequireFromString("0.5")), "NAVTolerance = %s", cfg.NAVTolerance)
	assert.True(t, cfg.Strict)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		variable string
		value    string
		want     error
	}{
		{"unknown level", "IBKR_LOG_LEVEL", "loud", config.ErrParsingConfig},
		{"not a number", "IBKR_NAV_TOLERANCE", "abc", config.ErrParsingConfig},
		{"not a boolean", "IBKR_STRICT", "maybe", config.ErrParsingConfig},
		{"unknown format", "IBKR_LOG_FORMAT", "xml", config.ErrInvalidConfig},
		{"negative tolerance", "IBKR_NAV_TOLERANCE", "-1", config.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.variable, tt.value)

			_, err := config.Load()

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "IBKR_LOG_FORMAT=json\nIBKR_STRICT=true\nIBKR_NAV_TOLERANCE=2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	// the environment wins over the file
	t.Setenv("IBKR_NAV_TOLERANCE", "3")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.NAVTolerance.Equal(decimal.NewFromInt(3)), "NAVTolerance = %s", cfg.NAVTolerance)
}

func TestLoad_MissingDotEnv(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Error(t, err, "Load should fail when an explicit file is missing")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Config{LogLevel: slog.LevelInfo, LogFormat: "JSON"}
	logger := cfg.Logger(&buf)

	logger.Debug("hidden")
	logger.Info("parsed", "component", "parse", "records", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be a single JSON line: %s", buf.String())
	assert.Equal(t, "parsed", entry["msg"])
	assert.Equal(t, "parse", entry["component"])
	assert.EqualValues(t, 2, entry["records"])
}
