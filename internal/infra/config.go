package infra

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"strikeball"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"strikeball"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"strikeball"`
	PGMaxConns  int32  `env:"PG_MAX_CONNS" envDefault:"10"`
	PGMinConns  int32  `env:"PG_MIN_CONNS" envDefault:"2"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"8080"`

	// Sessions
	SessionTTL string `env:"SESSION_TTL" envDefault:"720h"`

	// Avatars
	AvatarDir     string `env:"AVATAR_DIR" envDefault:"./data/avatars"`
	AvatarBaseURL string `env:"AVATAR_BASE_URL" envDefault:"/files"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
