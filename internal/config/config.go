package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yigit/trainhub/internal/pkg/helpers"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when no path is given
const DefaultPath = "configs/config.yaml"

// Store backends for the reference server
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config structure represents the application configuration
type Config struct {
	Client struct {
		BaseURL        string `yaml:"base_url" env:"TRAINHUB_API_URL"`
		SessionDir     string `yaml:"session_dir" env:"TRAINHUB_SESSION_DIR"`
		RequestTimeout string `yaml:"request_timeout" env:"TRAINHUB_REQUEST_TIMEOUT"`
		ReadRetries    int    `yaml:"read_retries" env:"TRAINHUB_READ_RETRIES"`
		RetryDelay     string `yaml:"retry_delay" env:"TRAINHUB_RETRY_DELAY"`
		DemoLogins     bool   `yaml:"demo_logins" env:"TRAINHUB_DEMO_LOGINS"`

		// InvalidateRelated also refreshes collections embedding a written entity
		InvalidateRelated bool `yaml:"invalidate_related" env:"TRAINHUB_INVALIDATE_RELATED"`
	} `yaml:"client"`

	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		Store       string `yaml:"store" env:"SERVER_STORE"`
		RequireAuth bool   `yaml:"require_auth" env:"SERVER_REQUIRE_AUTH"`
		Seed        bool   `yaml:"seed" env:"SERVER_SEED"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret            string `yaml:"secret" env:"JWT_SECRET"`
		SessionExpiration string `yaml:"session_expiration" env:"JWT_SESSION_EXPIRATION"`
		Issuer            string `yaml:"issuer" env:"JWT_ISSUER"`
		BcryptCost        int    `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// .env is optional
	_ = godotenv.Load()

	if configPath == "" {
		configPath = DefaultPath
	}

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when no file or environment overrides it
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Client defaults
	config.Client.BaseURL = "http://localhost:8080/api"
	config.Client.SessionDir = defaultSessionDir()
	config.Client.RequestTimeout = "0s"
	config.Client.ReadRetries = 1
	config.Client.RetryDelay = "200ms"
	config.Client.DemoLogins = true

	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.Store = StoreMemory
	config.Server.RequireAuth = false
	config.Server.Seed = true

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "trainhub"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.SessionExpiration = "24h"
	config.JWT.Issuer = "trainhub"
	config.JWT.BcryptCost = 12

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".trainhub"
	}
	return filepath.Join(home, ".trainhub")
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Client.BaseURL) == "" {
		return fmt.Errorf("client base url is required")
	}
	if _, err := url.ParseRequestURI(config.Client.BaseURL); err != nil {
		return fmt.Errorf("invalid client base url: %w", err)
	}

	if config.Client.ReadRetries < 0 {
		return fmt.Errorf("client read retries cannot be negative")
	}

	if _, err := time.ParseDuration(config.Client.RetryDelay); err != nil {
		return fmt.Errorf("invalid client retry delay format: %w", err)
	}

	if _, err := time.ParseDuration(config.Client.RequestTimeout); err != nil {
		return fmt.Errorf("invalid client request timeout format: %w", err)
	}

	switch config.Server.Store {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("unknown server store %q", config.Server.Store)
	}

	if config.Server.RequireAuth && config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required when authentication is enforced")
	}

	if _, err := time.ParseDuration(config.JWT.SessionExpiration); err != nil {
		return fmt.Errorf("invalid JWT session expiration format: %w", err)
	}

	if config.JWT.BcryptCost < 4 || config.JWT.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}

	return nil
}

// RetryDelay returns the parsed delay between read attempts
func (c *Config) RetryDelay() time.Duration {
	return helpers.ParseDuration(c.Client.RetryDelay, 200*time.Millisecond)
}

// RequestTimeout returns the parsed client request timeout; zero means transport default
func (c *Config) RequestTimeout() time.Duration {
	return helpers.ParseDuration(c.Client.RequestTimeout, 0)
}

// SessionExpiration returns the parsed lifetime of a server session token
func (c *Config) SessionExpiration() time.Duration {
	return helpers.ParseDuration(c.JWT.SessionExpiration, 24*time.Hour)
}

// ConnMaxLifetime returns the parsed lifetime of a pooled database connection
func (c *Config) ConnMaxLifetime() time.Duration {
	return helpers.ParseDuration(c.Database.ConnMaxLifetime, time.Hour)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
