package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
	Requests RequestsConfig
	Digest   DigestConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// StorageConfig selects the backend that plays the role of device-local storage.
type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/docusphere.db"`
}

type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"docusphere:"`
}

type DatabaseConfig struct {
	DSN      string `env:"DB_DSN"`
	MaxConns int    `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns int    `env:"DB_MIN_CONNS" envDefault:"2"`
}

type FirebaseConfig struct {
	CredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
}

type AuthConfig struct {
	AdminEmail    string        `env:"ADMIN_EMAIL" envDefault:"admin@docusphere.com"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	RateLimit     float64       `env:"AUTH_RATE_LIMIT" envDefault:"1"`
	RateBurst     int           `env:"AUTH_RATE_BURST" envDefault:"5"`
	RateIdleTTL   time.Duration `env:"AUTH_RATE_IDLE_TTL" envDefault:"10m"`
}

type CheckoutConfig struct {
	ConfirmDelay time.Duration `env:"CHECKOUT_CONFIRM_DELAY" envDefault:"2s"`
}

type RequestsConfig struct {
	Fee           int64  `env:"REQUEST_FEE" envDefault:"4000"`
	AccountName   string `env:"BANK_ACCOUNT_NAME" envDefault:"DocuSphere Academic Projects"`
	AccountNumber string `env:"BANK_ACCOUNT_NUMBER" envDefault:"0123456789"`
	BankName      string `env:"BANK_NAME" envDefault:"First Bank Nigeria"`
}

type DigestConfig struct {
	Schedule string `env:"DIGEST_SCHEDULE" envDefault:"0 0 0 * * *"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"docusphere-backend"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch strings.ToLower(c.Storage.Driver) {
	case "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite storage driver")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis storage driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Auth.AdminEmail == "" || c.Auth.AdminPassword == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	if c.Requests.Fee < 0 {
		return fmt.Errorf("REQUEST_FEE must not be negative")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
