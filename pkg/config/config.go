package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Required fields
	SessionSecret string `mapstructure:"session_secret"`

	// Storage
	DBPath       string `mapstructure:"db_path"`
	SessionStore string `mapstructure:"session_store"` // "sqlite" or "redis"
	RedisURL     string `mapstructure:"redis_url"`

	// Optional API settings
	APIHost string `mapstructure:"api_host"`
	APIPort int    `mapstructure:"api_port"`

	// Optional session settings
	JWTAlgorithm    string        `mapstructure:"jwt_algorithm"`
	SessionLifetime time.Duration `mapstructure:"session_lifetime"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`

	// Optional quote settings
	QuoteURL     string        `mapstructure:"quote_url"`
	QuoteTimeout time.Duration `mapstructure:"quote_timeout"`

	// First-run account created by `todolist seed`
	SeedUsername string `mapstructure:"seed_username"`
	SeedPassword string `mapstructure:"seed_password"`

	// Optional logging settings
	LogFile string `mapstructure:"log_file"`

	DevMode bool `mapstructure:"dev_mode"`

	ConfigPath string `mapstructure:"-"`
}

const (
	DefaultConfigPath      = "config.yml"
	DefaultDBPath          = "todolist.sqlite3"
	DefaultSessionStore    = "sqlite"
	DefaultAPIHost         = "0.0.0.0"
	DefaultAPIPort         = 5000
	DefaultJWTAlgorithm    = "HS256"
	DefaultSessionLifetime = 24 * time.Hour
	DefaultQuoteURL        = "https://api.quotable.io/random"
	DefaultQuoteTimeout    = 3 * time.Second
	DefaultSeedUsername    = "admin"
	DefaultSeedPassword    = "password"

	EnvPrefix = "TODOLIST"
)

// Load reads configuration from configPath (optional when left at the
// default), a .env file in the working directory and TODOLIST_* variables.
func Load(configPath string) (*Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Set defaults
	v.SetDefault("session_secret", "")
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("session_store", DefaultSessionStore)
	v.SetDefault("redis_url", "")
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("jwt_algorithm", DefaultJWTAlgorithm)
	v.SetDefault("session_lifetime", DefaultSessionLifetime)
	v.SetDefault("cookie_secure", false)
	v.SetDefault("quote_url", DefaultQuoteURL)
	v.SetDefault("quote_timeout", DefaultQuoteTimeout)
	v.SetDefault("seed_username", DefaultSeedUsername)
	v.SetDefault("seed_password", DefaultSeedPassword)
	v.SetDefault("log_file", "")
	v.SetDefault("dev_mode", false)

	// Allow environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}

	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	switch c.SessionStore {
	case "sqlite":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required when session_store is 'redis'")
		}
	default:
		return fmt.Errorf("session_store must be 'sqlite' or 'redis'")
	}

	switch c.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("jwt_algorithm must be one of HS256, HS384, HS512")
	}

	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("session_lifetime must be positive")
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode
}

// Addr is the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}
