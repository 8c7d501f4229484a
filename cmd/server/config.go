package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Config holds the server settings. Flags override the environment.
type Config struct {
	Port int `env:"SIMUI_PORT" envDefault:"50051"`

	RedisAddr     string `env:"SIMUI_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisMaster   string `env:"SIMUI_REDIS_MASTER"`
	RedisPassword string `env:"SIMUI_REDIS_PASSWORD"`
	RedisDB       int    `env:"SIMUI_REDIS_DB"`
	RedisTLS      bool   `env:"SIMUI_REDIS_TLS"`

	// BuildTTL expires idle builds, zero keeps them
	BuildTTL time.Duration `env:"SIMUI_BUILD_TTL" envDefault:"720h"`

	ReferenceBaseURL  string        `env:"SIMUI_REFERENCE_BASE_URL" envDefault:"https://wowsims.github.io"`
	ReferenceTimeout  time.Duration `env:"SIMUI_REFERENCE_TIMEOUT" envDefault:"30s"`
	ReferenceCacheTTL time.Duration `env:"SIMUI_REFERENCE_CACHE_TTL" envDefault:"24h"`

	LinkBaseURL string `env:"SIMUI_LINK_BASE_URL" envDefault:"https://wowsims.github.io/wotlk/"`

	LogLevel string `env:"SIMUI_LOG_LEVEL" envDefault:"info"`

	ShutdownTimeout time.Duration `env:"SIMUI_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// loadConfig reads the environment into a Config
func loadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// bindFlags registers flags whose defaults are the environment values, so an
// explicit flag wins over SIMUI_* variables
func (c *Config) bindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.Port, "port", c.Port, "gRPC server port")
	fs.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "redis endpoint, comma separated for cluster or sentinels")
	fs.StringVar(&c.RedisMaster, "redis-master", c.RedisMaster, "sentinel master name")
	fs.IntVar(&c.RedisDB, "redis-db", c.RedisDB, "redis database")
	fs.BoolVar(&c.RedisTLS, "redis-tls", c.RedisTLS, "connect to redis over TLS")
	fs.DurationVar(&c.BuildTTL, "build-ttl", c.BuildTTL, "expire builds not updated within this window, 0 keeps them")
	fs.StringVar(&c.ReferenceBaseURL, "reference-base-url", c.ReferenceBaseURL, "host serving the reference asset tables")
	fs.DurationVar(&c.ReferenceTimeout, "reference-timeout", c.ReferenceTimeout, "reference fetch timeout")
	fs.StringVar(&c.LinkBaseURL, "link-base-url", c.LinkBaseURL, "page sharable links point at")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Validate checks the settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("port", c.Port, 1, 65535, vb)
	errors.ValidateRequired("redis_addr", c.RedisAddr, vb)
	errors.ValidateEnum("log_level", strings.ToLower(c.LogLevel), []string{"debug", "info", "warn", "error"}, vb)
	if c.BuildTTL < 0 {
		vb.Field("build_ttl", "must not be negative")
	}
	return vb.Build()
}

func (c *Config) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
