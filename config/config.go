// Package config provides configuration settings for the URL shortener service.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Strategy names understood by the identifier generator.
const (
	StrategySequential = "sequential"
	StrategyPool       = "pool"
	StrategySqids      = "sqids"
)

// Config holds the configuration settings for the application.
type Config struct {
	// Domain is the prefix of every generated short URL.
	Domain string `env:"SHORTENER_DOMAIN"`
	// Limit is the maximum number of distinct long URLs kept in memory.
	Limit int `env:"SHORTENER_LIMIT"`
	// Strategy selects the identifier generator.
	Strategy string `env:"SHORTENER_STRATEGY"`
	// Pool lists explicit identifier tokens for the pool strategy.
	// When empty, PoolSize placeholder tokens are generated instead.
	Pool     []string `env:"SHORTENER_POOL" envSeparator:","`
	PoolSize int      `env:"SHORTENER_POOL_SIZE"`

	SqidsMinLength int    `env:"SHORTENER_SQIDS_MIN_LENGTH"`
	SqidsAlphabet  string `env:"SHORTENER_SQIDS_ALPHABET"`

	RateLimit        int           `env:"RATE_LIMIT"`
	RatePeriod       time.Duration `env:"RATE_PERIOD"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT"`
	ServerPort       string        `env:"SERVER_PORT"`
	DisableRateLimit bool          `env:"DISABLE_RATE_LIMIT"`
}

// DefaultConfig returns the default configuration settings.
func DefaultConfig() *Config {
	return &Config{
		Domain:           "https://rev.me",
		Limit:            100,
		Strategy:         StrategySequential,
		PoolSize:         100,
		SqidsMinLength:   6,
		RateLimit:        10,
		RatePeriod:       time.Second,
		RequestTimeout:   5 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		ServerPort:       ":3000",
		DisableRateLimit: false,
	}
}

// Load builds a Config from the defaults, the given command line arguments and
// the process environment, in that order of precedence (environment wins).
func Load(args []string) (*Config, error) {
	return load(args, env.Options{})
}

func load(args []string, opts env.Options) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.StringVar(&cfg.Domain, "domain", cfg.Domain, "domain prefix for generated short URLs")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "maximum number of stored URLs")
	fs.StringVar(&cfg.Strategy, "strategy", cfg.Strategy, "identifier strategy: sequential, pool or sqids")
	fs.IntVar(&cfg.PoolSize, "pool-size", cfg.PoolSize, "number of placeholder tokens for the pool strategy")
	fs.StringVar(&cfg.ServerPort, "addr", cfg.ServerPort, "HTTP listen address")
	fs.BoolVar(&cfg.DisableRateLimit, "disable-rate-limit", cfg.DisableRateLimit, "Disable rate limiting for performance testing")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Domain = strings.TrimRight(cfg.Domain, "/")
	cfg.Strategy = strings.ToLower(strings.TrimSpace(cfg.Strategy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.Domain == "":
		return errors.New("domain cannot be empty")
	case c.Limit <= 0:
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	case c.PoolSize < 0:
		return fmt.Errorf("pool size cannot be negative, got %d", c.PoolSize)
	case c.RequestTimeout <= 0:
		return errors.New("request timeout must be positive")
	case !c.DisableRateLimit && (c.RateLimit <= 0 || c.RatePeriod <= 0):
		return errors.New("invalid rate limit configuration")
	}

	switch c.Strategy {
	case StrategySequential, StrategyPool, StrategySqids:
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	return nil
}
