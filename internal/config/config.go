package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries all runtime settings. Values are read from SSGS_* environment
// variables; every field has a development-friendly default so the server can
// start with an empty environment.
type Config struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	Env          string        `envconfig:"ENV" default:"dev"`
	TemplatesDir string        `envconfig:"TEMPLATES_DIR" default:"templates"`
	PublicDir    string        `envconfig:"PUBLIC_DIR" default:"public"`
	DataDir      string        `envconfig:"DATA_DIR" default:"data"`
	BackendURL   string        `envconfig:"BACKEND_URL" default:""`
	APITimeout   time.Duration `envconfig:"API_TIMEOUT" default:"60s"`

	// GoogleClientID enables the Google sign-in button; when empty only the
	// demo login is offered.
	GoogleClientID string `envconfig:"GOOGLE_CLIENT_ID" default:""`

	// SessionHashKey signs the session cookie. When empty a process-ephemeral
	// key is generated, which invalidates sessions on restart (dev only).
	SessionHashKey  string `envconfig:"SESSION_HASH_KEY" default:""`
	SessionBlockKey string `envconfig:"SESSION_BLOCK_KEY" default:""`
}

// Load reads configuration from the environment under the SSGS prefix.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SSGS", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 60 * time.Second
	}
	return cfg, nil
}

// IsProd reports whether the server runs with production hardening (secure
// cookies, cached templates).
func (c Config) IsProd() bool { return c.Env == "prod" }
