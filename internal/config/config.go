package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dharmasatrya/flightfinder/internal/providers"
)

const EnvPrefix = "FLIGHTFINDER"

// Config represents the complete flightfinder configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig controls the outbound flights-search request
type APIConfig struct {
	// Key is sent as X-RapidAPI-Key. Required.
	Key string `mapstructure:"key"`
	// Host is sent as X-RapidAPI-Host
	Host    string `mapstructure:"host"`
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds the HTTP transport (0 = no timeout)
	Timeout time.Duration `mapstructure:"timeout"`
	// ForwardAdults sends the user's adult count instead of always 1
	ForwardAdults bool `mapstructure:"forward_adults"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// SessionConfig controls where web session state lives
type SessionConfig struct {
	// Store is "memory" or "redis"
	Store string        `mapstructure:"store"`
	TTL   time.Duration `mapstructure:"ttl"`
	Redis RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File is where the TUI writes its log
	File string `mapstructure:"file"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			Host:    providers.DefaultTripAdvisorHost,
			BaseURL: providers.DefaultTripAdvisorBaseURL,
			Timeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Port: "8080",
		},
		Session: SessionConfig{
			Store: "memory",
			TTL:   30 * time.Minute,
			Redis: RedisConfig{
				Host: "localhost",
				Port: "6379",
			},
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
			File:   filepath.Join(ConfigDir(), "tui.log"),
		},
	}
}

// SetDefaults registers every key so environment overrides are picked up by
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("api.key", d.API.Key)
	v.SetDefault("api.host", d.API.Host)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.forward_adults", d.API.ForwardAdults)

	v.SetDefault("server.port", d.Server.Port)

	v.SetDefault("session.store", d.Session.Store)
	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.redis.host", d.Session.Redis.Host)
	v.SetDefault("session.redis.port", d.Session.Redis.Port)
	v.SetDefault("session.redis.password", d.Session.Redis.Password)
	v.SetDefault("session.redis.db", d.Session.Redis.DB)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Load reads defaults, an optional YAML file, a .env file and FLIGHTFINDER_*
// environment variables, in increasing precedence. An explicit cfgFile must
// exist.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	// e.g. FLIGHTFINDER_SESSION_REDIS_HOST for session.redis.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api.key", EnvPrefix+"_API_KEY", "RAPIDAPI_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var (
	ErrMissingAPIKey   = errors.New("api.key is required (set " + EnvPrefix + "_API_KEY or RAPIDAPI_KEY)")
	ErrUnknownStore    = errors.New("session.store must be \"memory\" or \"redis\"")
	ErrNegativeTimeout = errors.New("api.timeout must not be negative")
)

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return ErrMissingAPIKey
	}
	if c.API.Timeout < 0 {
		return ErrNegativeTimeout
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return ErrUnknownStore
	}
	return nil
}

// ConfigDir returns $XDG_CONFIG_HOME/flightfinder, falling back to
// ~/.config/flightfinder.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flightfinder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flightfinder"
	}
	return filepath.Join(home, ".config", "flightfinder")
}
