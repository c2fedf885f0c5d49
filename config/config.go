// Package config loads the settings of the ibkr command from the environment.
//
// Values come from environment variables, optionally seeded from a .env file:
//
//	IBKR_LOG_LEVEL      debug, info, warn or error (default: info)
//	IBKR_LOG_FORMAT     text or json (default: text)
//	IBKR_NAV_TOLERANCE  absolute tolerance of the NAV reconciliation (default: 0.01)
//	IBKR_STRICT         treat warnings as failures in checks (default: false)
//
// Command-line flags take precedence over these values.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings shared by every command.
type Config struct {
	LogLevel     slog.Level      `env:"IBKR_LOG_LEVEL" envDefault:"info"`
	LogFormat    string          `env:"IBKR_LOG_FORMAT" envDefault:"text"`
	NAVTolerance decimal.Decimal `env:"IBKR_NAV_TOLERANCE" envDefault:"0.01"`
	Strict       bool            `env:"IBKR_STRICT" envDefault:"false"`
}

// Load reads the configuration from the environment.
//
// The named .env files are loaded first; variables already set in the environment win.
// Without files, a .env file in the working directory is loaded if it exists.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		// the default .env file is optional
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", strings.Join(files, ", "), err)
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that parse but make no sense.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q, want text or json", ErrInvalidConfig, c.LogFormat)
	}
	if c.NAVTolerance.IsNegative() {
		return fmt.Errorf("%w: negative NAV tolerance %s", ErrInvalidConfig, c.NAVTolerance)
	}
	return nil
}

// Logger returns a logger writing to w with the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
