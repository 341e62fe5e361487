package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage driver identifiers accepted by Load.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	StorageDriver  string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	TokenTTL       time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("IEVMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "IEVMS API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("storage.driver", StoragePostgres)
	v.SetDefault("sqlite.path", "data/ievms.db")
	v.SetDefault("token.ttl", "168h")
	v.SetDefault("auth.rate_limit", 20)
	v.SetDefault("auth.rate_window", "1m")

	ttl, err := time.ParseDuration(v.GetString("token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid token ttl: %w", err)
	}

	window, err := time.ParseDuration(v.GetString("auth.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid auth rate window: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		StorageDriver:  strings.ToLower(v.GetString("storage.driver")),
		DatabaseURL:    v.GetString("database.url"),
		SQLitePath:     v.GetString("sqlite.path"),
		JWTSecret:      v.GetString("jwt.secret"),
		TokenTTL:       ttl,
		AuthRateLimit:  v.GetInt("auth.rate_limit"),
		AuthRateWindow: window,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for postgres storage")
		}
	case StorageSQLite:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 168 * time.Hour
	}

	return cfg, nil
}
