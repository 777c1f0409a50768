package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"crmd"`
		Port int    `envconfig:"PORT" default:"8080"`
		// Tenant the local console operates on. The API resolves tenants
		// from auth claims instead.
		Tenant string `envconfig:"TENANT" default:"default"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"crmd"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// HMAC secret for API tokens. Required outside local dev.
		Secret string `envconfig:"AUTH_SECRET" default:"dev-secret"`
	}

	AI struct {
		BaseURL string `envconfig:"AI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
		Model   string `envconfig:"AI_MODEL" default:"gemini-2.0-flash"`
		APIKey  string `envconfig:"AI_API_KEY"`
	}

	Email struct {
		BaseURL string `envconfig:"EMAIL_BASE_URL" default:"https://api.resend.com"`
		APIKey  string `envconfig:"EMAIL_API_KEY"`
		From    string `envconfig:"EMAIL_FROM" default:"noreply@crmd.local"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
