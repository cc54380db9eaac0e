package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// BackendURL is the base URL of the conference API. Defaults to a local backend outside
	// production; BACKEND_URL is required in production.
	BackendURL         string
	BackendTimeout     time.Duration
	BackendTokenSecret string

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminEmail        string
	AdminPasswordHash string

	AllowedOrigins []string
	JournalDBUrl   string

	AlertEmail string
	Email      EmailConfig
}

// EmailConfig holds the mailer settings used for sync failure alerts.
type EmailConfig struct {
	Provider              string
	FromAddress           string
	FromName              string
	SESRegion             string
	SESAccessKeyID        string
	SESSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		BackendURL:         os.Getenv("BACKEND_URL"),
		BackendTokenSecret: os.Getenv("BACKEND_TOKEN_SECRET"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AllowedOrigins:     splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		JournalDBUrl:       os.Getenv("JOURNAL_DATABASE_URL"),
		AlertEmail:         os.Getenv("ALERT_EMAIL"),
		Email: EmailConfig{
			Provider:              os.Getenv("EMAIL_PROVIDER"),
			FromAddress:           os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:              os.Getenv("EMAIL_FROM_NAME"),
			SESRegion:             os.Getenv("AWS_SES_REGION"),
			SESAccessKeyID:        os.Getenv("AWS_SES_ACCESS_KEY_ID"),
			SESSecretAccessKey:    os.Getenv("AWS_SES_SECRET_ACCESS_KEY"),
			SESInsecureSkipVerify: os.Getenv("AWS_SES_INSECURE_SKIP_VERIFY") == "true",
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.BackendURL == "" && env != "production" {
		cfg.BackendURL = "http://localhost:3000"
	}
	cfg.BackendURL = strings.TrimSuffix(cfg.BackendURL, "/")
	cfg.BackendTimeout = parseDuration("BACKEND_TIMEOUT", 10*time.Second)
	cfg.JWTExpiry = parseDuration("JWT_EXPIRY", 24*time.Hour)
	if cfg.JWTSecret == "" {
		if env == "production" {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	return cfg, nil
}

func parseDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s %q, using %s", key, s, def)
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
