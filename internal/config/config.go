// Package config loads server configuration from the environment.
//
// A .env file in the working directory is honored when present so the
// server can be launched from MCP client configs that don't support
// per-server environment blocks. Real environment variables win over
// .env values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvToken    = "SHORTCUT_API_TOKEN"
	EnvBaseURL  = "SHORTCUT_API_BASE_URL"
	EnvTimeout  = "SHORTCUT_HTTP_TIMEOUT"
	EnvPageSize = "SHORTCUT_SEARCH_PAGE_SIZE"
)

// Defaults.
const (
	DefaultBaseURL  = "https://api.app.shortcut.com/api/v3"
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 25

	// MaxPageSize is the largest page the search endpoints accept.
	MaxPageSize = 25
)

// Config holds everything the server needs to talk to the API.
type Config struct {
	Token    string
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

// Load reads configuration from the environment, merging in a .env
// file if one exists. It fails only when the API token is missing or a
// set variable cannot be parsed.
func Load() (*Config, error) {
	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	token := os.Getenv(EnvToken)
	if token == "" {
		return nil, fmt.Errorf("%s is not set", EnvToken)
	}

	cfg := &Config{
		Token:    token,
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		PageSize: DefaultPageSize,
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv(EnvPageSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvPageSize, err)
		}
		if n < 1 {
			n = 1
		}
		if n > MaxPageSize {
			n = MaxPageSize
		}
		cfg.PageSize = n
	}

	return cfg, nil
}
