package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the directory web application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppTitle          string        `envconfig:"APP_TITLE" default:"User Directory"`
	RateLimit         int           `envconfig:"APP_RATE_LIMIT" default:"60"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	BackendURL string `envconfig:"BACKEND_URL" default:"https://jsonplaceholder.typicode.com"`
	// Zero leaves the backend client without a timeout.
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"0s"`
}

// APIConfig holds runtime configuration for the bundled users API.
type APIConfig struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	APIAddr   string `envconfig:"API_ADDR" default:":8081"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Empty selects the in-memory store.
	PGDSN string `envconfig:"PG_DSN"`
	Seed  bool   `envconfig:"API_SEED" default:"false"`

	ReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("backend url must be provided")
	}
	return &cfg, nil
}

// LoadAPIConfig reads the users API configuration from environment variables.
func LoadAPIConfig() (*APIConfig, error) {
	var cfg APIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
