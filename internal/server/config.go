// Package server provides configuration helpers that define runtime defaults,
// validation, and environment loading for the GoChat relay.
package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultPort            = "3500"
	defaultMaxMessageSize  = 4096
	defaultSendBuffer      = 256
	defaultLocale          = "en-US"
	defaultShutdownTimeout = 15 * time.Second

	environmentProduction = "production"
)

// Config holds the server configuration settings including security controls.
type Config struct {
	Port            string        `env:"PORT" envDefault:"3500"`
	Environment     string        `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5500,http://127.0.0.1:5500"`
	MaxMessageSize  int64         `env:"MAX_MESSAGE_SIZE" envDefault:"4096"`
	SendBuffer      int           `env:"SEND_BUFFER" envDefault:"256"`
	Locale          string        `env:"LOCALE" envDefault:"en-US"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`
}

// NewConfig creates a Config populated with default values for all settings.
func NewConfig() Config {
	cfg, err := LoadConfig(map[string]string{})
	if err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// NewConfigFromEnv creates a Config from the process environment.
func NewConfigFromEnv() (Config, error) {
	return LoadConfig(nil)
}

// LoadConfig reads configuration from environ, or from the process
// environment when environ is nil. Out-of-range values fall back to defaults;
// values that do not parse at all are reported as errors.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return sanitizeConfig(cfg), nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// IsProduction reports whether the relay runs with production origin rules.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, environmentProduction)
}

func sanitizeConfig(cfg Config) Config {
	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" || cfg.Port == ":" {
		cfg.Port = defaultPort
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}

	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = defaultSendBuffer
	}

	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = defaultLocale
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.AllowedOrigins = origins

	return cfg
}
