// Package config loads application settings from defaults, an optional YAML
// file, a .env file and BIZCARD_* environment variables, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, so database.dsn is
// read from BIZCARD_DATABASE_DSN.
const EnvPrefix = "BIZCARD"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// BaseURL is the public origin used to build share links.
	BaseURL         string        `mapstructure:"base_url"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig selects the card store. Driver is sqlite3, pgx or memory.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// CacheConfig controls the published card cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig limits public card requests per client IP.
// Requests of zero disables the limit.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// AuthConfig describes how the gateway identifies users.
type AuthConfig struct {
	// Mode is "header" (production) or "dev" (fall back to DevUserID).
	Mode          string `mapstructure:"mode"`
	GatewaySecret string `mapstructure:"gateway_secret"`
	DevUserID     string `mapstructure:"dev_user_id"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// SnapshotConfig controls PNG rendering of card pages with headless Chrome.
type SnapshotConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ChromePath string        `mapstructure:"chrome_path"`
	RemoteURL  string        `mapstructure:"remote_url"`
	MaxTabs    int           `mapstructure:"max_tabs"`
	Width      int64         `mapstructure:"width"`
	Height     int64         `mapstructure:"height"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.base_url", "http://localhost:3000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "45s") // snapshots can take a while
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "./data/bizcard.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("auth.mode", "header")
	v.SetDefault("auth.gateway_secret", "")
	v.SetDefault("auth.dev_user_id", "dev-user")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.chrome_path", "")
	v.SetDefault("snapshot.remote_url", "")
	v.SetDefault("snapshot.max_tabs", 3)
	v.SetDefault("snapshot.width", 800)
	v.SetDefault("snapshot.height", 500)
	v.SetDefault("snapshot.timeout", "15s")
}

// Load reads configuration. configPath and envFile are optional; a missing
// .env file is not an error, but a missing or malformed config file is.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		// Variables already set in the process environment win.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "pgx", "memory":
	default:
		return fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.DSN == "" {
		return errors.New("database.dsn: required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: %d out of range", c.Server.Port)
	}
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url: %q is not an absolute URL", c.Server.BaseURL)
	}

	switch c.Auth.Mode {
	case "header":
	case "dev":
		if c.Auth.DevUserID == "" {
			return errors.New("auth.dev_user_id: required in dev mode")
		}
	default:
		return fmt.Errorf("auth.mode: unknown mode %q", c.Auth.Mode)
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("cache.ttl: must be positive")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return errors.New("rate_limit.window: must be positive")
	}
	if c.Snapshot.Enabled && (c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0) {
		return errors.New("snapshot: width and height must be positive")
	}
	return nil
}
