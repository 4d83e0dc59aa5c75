package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config aggregates all configuration sections, populated from environment
// variables. The cmd entrypoints load a .env file first, so local runs and
// container deployments share the same knobs.
type Config struct {
	Env  string         `env:"ENV" envDefault:"dev"`
	HTTP HTTPConfig     `envPrefix:"HTTP_"`
	DB   DatabaseConfig `envPrefix:"DB_"`
	Auth AuthConfig     `envPrefix:"AUTH_"`
}

type HTTPConfig struct {
	Addr string `env:"ADDR" envDefault:":8080"`
}

type DatabaseConfig struct {
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME" envDefault:"lumamail"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	// RunMigrations applies pending schema migrations on server startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// DSN builds a postgres connection URL for lib/pq and golang-migrate.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
