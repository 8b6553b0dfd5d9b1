package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	ServerURL      string        `envconfig:"CATALOG_SERVER_URL" default:"https://pr.karp.lol"`
	FetchTimeout   time.Duration `envconfig:"CATALOG_FETCH_TIMEOUT" default:"15s"`
	DefaultLocale  string        `envconfig:"DEFAULT_LOCALE" default:"en-US"`
	StoreBackend   string        `envconfig:"STORE_BACKEND" default:"badger"`
	StorePath      string        `envconfig:"STORE_PATH" default:"data/store"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding    string        `envconfig:"LOG_ENCODING" default:"console"`
	LogOutput      string        `envconfig:"LOG_OUTPUT"`
}

// LoadConfig loads the configuration from an optional .env file and the environment
func LoadConfig() (*Config, error) {
	// A missing .env is fine; real environment variables still apply
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	switch cfg.StoreBackend {
	case "badger", "memory":
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q (want badger or memory)", cfg.StoreBackend)
	}
	return &cfg, nil
}
