package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string        `env:"PORT" env-default:"5000"`
	ServiceName string        `env:"SERVICE_NAME" env-default:"fanshop"`
	LogLevel    string        `env:"LOG_LEVEL" env-default:"info"`
	DBDriver    string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseURL string        `env:"DATABASE_URL" env-required:"true"`
	JWTSecret   string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"1h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:","`

	ESURL      string `env:"ES_URL"`
	ESUser     string `env:"ES_USER"`
	ESPassword string `env:"ES_PASSWORD"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"admin@fanshop.local"`

	CORSOrigins []string `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	// cleanenv treats a set-but-empty variable as present.
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	switch c.DBDriver {
	case DriverPostgres:
		// pq accepts key=value DSNs as-is; only URLs need parsing.
		if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
			if _, err := pq.ParseURL(c.DatabaseURL); err != nil {
				return fmt.Errorf("DATABASE_URL: %w", err)
			}
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) AdminConfigured() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func (c *Config) SearchEnabled() bool {
	return c.ESURL != ""
}

func (c *Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
