package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile   = "file"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds server configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"4000"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"file"`
	DataFile    string `env:"DATA_FILE" envDefault:"db.json"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/users?charset=utf8mb4&parseTime=True&loc=Local"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"users.db"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass   string `env:"REDIS_PASSWORD"`
	SwaggerHost string `env:"SWAGGER_HOST"`
	SeedFile    string `env:"SEED_FILE"`
	ResetDB     bool   `env:"RESET_DB" envDefault:"false"`
}

// ClientConfig holds the defaults used by the useradmin CLI.
type ClientConfig struct {
	APIBaseURL string `env:"USERADMIN_API_URL" envDefault:"http://localhost:4000"`
	Token      string `env:"USERADMIN_TOKEN"`
}

// Load builds Config from environment with defaults. An empty REDIS_ADDR
// disables caching.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreDriver {
	case DriverFile, DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}

// LoadClient builds ClientConfig from environment with defaults.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
