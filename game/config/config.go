package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/knight-board/logging"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full application configuration
type Config struct {
	BoardAPI    string         `koanf:"board_api"`
	CommandsAPI string         `koanf:"commands_api"`
	Fetch       FetchConfig    `koanf:"fetch"`
	Log         logging.Config `koanf:"log"`
	Server      ServerConfig   `koanf:"server"`
	Runs        RunsConfig     `koanf:"runs"`
	Ngrok       NgrokConfig    `koanf:"ngrok"`
}

// FetchConfig controls retrieval of the source documents
type FetchConfig struct {
	Timeout    time.Duration `koanf:"timeout"`
	Retries    int           `koanf:"retries"`
	RetryDelay time.Duration `koanf:"retry_delay"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RunsConfig controls the in-memory run registry
type RunsConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// NgrokConfig configures the optional public tunnel
type NgrokConfig struct {
	Enabled   bool   `koanf:"enabled"`
	AuthToken string `koanf:"authtoken"`
	Domain    string `koanf:"domain"`
}

// Default values
const (
	DefaultFetchTimeout    = 10 * time.Second
	DefaultRetryDelay      = 100 * time.Millisecond
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "console"
	DefaultHost            = "localhost"
	DefaultPort            = 8080
	DefaultRunsTTL         = 24 * time.Hour
	DefaultCleanupInterval = time.Hour
)

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Fetch.RetryDelay == 0 {
		cfg.Fetch.RetryDelay = DefaultRetryDelay
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Runs.TTL == 0 {
		cfg.Runs.TTL = DefaultRunsTTL
	}
	if cfg.Runs.CleanupInterval == 0 {
		cfg.Runs.CleanupInterval = DefaultCleanupInterval
	}
}

// Validate checks value ranges. Source addresses are not required here
// because only the run command needs them.
func (c *Config) Validate() error {
	var problems []string

	if c.Fetch.Timeout < 0 {
		problems = append(problems, "fetch.timeout must not be negative")
	}
	if c.Fetch.Retries < 0 {
		problems = append(problems, "fetch.retries must not be negative")
	}
	if c.Fetch.RetryDelay < 0 {
		problems = append(problems, "fetch.retry_delay must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Runs.TTL < 0 {
		problems = append(problems, "runs.ttl must not be negative")
	}
	if c.Runs.CleanupInterval < 0 {
		problems = append(problems, "runs.cleanup_interval must not be negative")
	}
	if err := c.Log.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
