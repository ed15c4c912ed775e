// Package config resolves the bridge configuration. Resolution happens in
// one step at setup — defaults, then process environment, then the optional
// YAML file — and the result is threaded explicitly to the components that
// need it. Nothing reads configuration ad hoc at call time.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL points at a math API on the local host.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultListen is the bridge's own HTTP address.
	DefaultListen = ":8080"
)

// Config is the single resolved configuration instance of the bridge.
type Config struct {
	// BaseURL is the upstream math API root. Must be http(s).
	BaseURL string `env:"MATHTOOLS_BASE_URL" yaml:"base_url"`
	// APIKey is sent as X-API-Key on every upstream request when set.
	APIKey string `env:"MATHTOOLS_API_KEY" yaml:"api_key"`
	// Listen is the bridge's own HTTP listen address.
	Listen string `env:"MATHTOOLS_LISTEN" yaml:"listen"`
}

// Load resolves the configuration. Environment variables override the
// defaults; values from the YAML file at path override the environment. A
// missing file is not an error — the environment profile then stands alone.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL: DefaultBaseURL,
		Listen:  DefaultListen,
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects base URLs the upstream client must never see.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url %q must start with http:// or https://", c.BaseURL)
	}
	return nil
}
