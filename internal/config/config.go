package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Ledger store
	StoreDriver  string `mapstructure:"STORE_DRIVER"` // sqlite | csv | memory
	DataDir      string `mapstructure:"DATA_DIR"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	// RetryAttempts bounds store write retries on transient I/O failure.
	RetryAttempts int `mapstructure:"STORE_RETRY_ATTEMPTS"`

	// Redis — empty URL disables the report cache and the alert worker.
	RedisURL       string `mapstructure:"REDIS_URL"`
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	// AccessCodes maps register access codes to operator names:
	// "code:Name,code:Name". A code starting with $2 is a bcrypt hash
	// (see cmd/genhash); anything else is compared verbatim.
	AccessCodes string `mapstructure:"ACCESS_CODES"`

	// Business
	LowStockThreshold int `mapstructure:"LOW_STOCK_THRESHOLD"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORE_DRIVER", "sqlite")
	viper.SetDefault("DATA_DIR", "./data")
	viper.SetDefault("DATABASE_PATH", "./data/urrovendas.db")
	viper.SetDefault("STORE_RETRY_ATTEMPTS", 3)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 12)
	// The register crew; overridden in production with bcrypt-hashed codes.
	viper.SetDefault("ACCESS_CODES", "0802:Pedro Reino,3105:Lucas Saboia,0405:Gabriel Gomes")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 5)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case "sqlite", "csv", "memory":
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q (want sqlite, csv or memory)", c.StoreDriver)
	}
	if len(c.Operators()) == 0 {
		return fmt.Errorf("ACCESS_CODES must contain at least one code:name pair")
	}
	return nil
}

// Operators parses AccessCodes into code→operator-name pairs. Malformed
// fragments are skipped rather than fatal so one typo does not lock the
// whole crew out.
func (c *Config) Operators() map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(c.AccessCodes, ",") {
		code, name, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || code == "" || strings.TrimSpace(name) == "" {
			continue
		}
		out[code] = strings.TrimSpace(name)
	}
	return out
}
