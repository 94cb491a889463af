// Package server provides configuration helpers that define runtime defaults,
// environment parsing, and rate-limiting parameters for the presence service.
package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	defaultPort            = "3000"
	defaultOrigin          = "http://localhost:3000"
	defaultMaxMessageSize  = 1024
	defaultSendBufferSize  = 256
	defaultBurst           = 120
	defaultRefillInterval  = time.Second
	defaultPublicDir       = "public"
	defaultShutdownTimeout = 10 * time.Second
)

// RateLimitConfig defines the parameters for per-connection message rate limiting.
type RateLimitConfig struct {
	Burst          int           `env:"BURST" envDefault:"120"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1s"`
}

// Config holds the server configuration settings including security controls.
type Config struct {
	Port               string          `env:"PORT" envDefault:"3000"`
	AllowedOrigins     []string        `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AllowMissingOrigin bool            `env:"ALLOW_MISSING_ORIGIN" envDefault:"false"`
	MaxMessageSize     int64           `env:"MAX_MESSAGE_SIZE" envDefault:"1024"`
	SendBufferSize     int             `env:"SEND_BUFFER_SIZE" envDefault:"256"`
	RateLimit          RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	PublicDir          string          `env:"PUBLIC_DIR" envDefault:"public"`
	LogLevel           string          `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat          string          `env:"LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout    time.Duration   `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	return &Config{
		Port:           defaultPort,
		AllowedOrigins: []string{defaultOrigin},
		MaxMessageSize: defaultMaxMessageSize,
		SendBufferSize: defaultSendBufferSize,
		RateLimit: RateLimitConfig{
			Burst:          defaultBurst,
			RefillInterval: defaultRefillInterval,
		},
		PublicDir:       defaultPublicDir,
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(env.ToMap(os.Environ()))
}

// LoadConfigFrom reads the configuration from the given environment map.
// Unset variables take their defaults; out-of-range values are replaced by
// defaults rather than rejected.
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	sanitized := sanitizeConfig(cfg)
	return &sanitized, nil
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func sanitizeConfig(cfg Config) Config {
	cfg.Port = strings.TrimSpace(cfg.Port)
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = defaultMaxMessageSize
	}

	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = defaultSendBufferSize
	}

	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaultBurst
	}

	if cfg.RateLimit.RefillInterval <= 0 {
		cfg.RateLimit.RefillInterval = defaultRefillInterval
	}

	if cfg.PublicDir == "" {
		cfg.PublicDir = defaultPublicDir
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
