// Package config loads runtime settings from the environment, an optional
// .env file, and an optional YAML file named by CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the values the core consumes.
//
// Fields:
//   - HTTPPort: listen port for the API.
//   - DatabaseURL: PostgreSQL DSN.
//   - JWTSecret: HMAC secret for session tokens.
//   - SessionTTL: lifetime of a session token and its cookie.
//   - GeminiAPIKey / GeminiModel: AI text service credentials and model.
//   - Env: development or production; drives cookie Secure and startup strictness.
//   - CORSOrigin: browser origin allowed to send credentials.
type Config struct {
	HTTPPort     string        `yaml:"http_port"`
	DatabaseURL  string        `yaml:"database_url"`
	JWTSecret    string        `yaml:"jwt_secret"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
	GeminiAPIKey string        `yaml:"gemini_api_key"`
	GeminiModel  string        `yaml:"gemini_model"`
	Env          string        `yaml:"env"`
	CORSOrigin   string        `yaml:"cors_origin"`
	LogLevel     string        `yaml:"log_level"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPPort = "8000"
	c.SessionTTL = 7 * 24 * time.Hour
	c.GeminiModel = "gemini-1.5-flash"
	c.Env = EnvDevelopment
	c.CORSOrigin = "http://localhost:5173"
	c.LogLevel = "info"
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool { return c.Env == EnvProduction }

// Load applies defaults, then the YAML file (if CONFIG_FILE is set), then
// environment variables (after reading .env if present).
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	cfg.LoadDefaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				*dst = v
				return
			}
		}
	}
	set(&c.HTTPPort, "HTTP_PORT", "PORT")
	set(&c.DatabaseURL, "DATABASE_URL")
	set(&c.JWTSecret, "JWT_SECRET")
	set(&c.GeminiAPIKey, "GEMINI_API_KEY")
	set(&c.GeminiModel, "GEMINI_MODEL")
	set(&c.Env, "APP_ENV", "NODE_ENV")
	set(&c.CORSOrigin, "CORS_ORIGIN")
	set(&c.LogLevel, "LOG_LEVEL")
	if v, ok := lookup("JWT_EXPIRES_IN"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		c.SessionTTL = d
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	return nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("unknown environment %q", c.Env)
	}
	if c.IsProduction() && c.GeminiAPIKey == "" {
		return errors.New("GEMINI_API_KEY is required in production")
	}
	return nil
}
