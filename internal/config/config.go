package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the storefront configuration, read from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	S3       S3Config
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig describes the catalogue database and its pool.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime time.Duration
	// AutoMigrate applies pending schema migrations when the API starts.
	AutoMigrate bool
}

// LoggerConfig selects the zerolog level and output format.
type LoggerConfig struct {
	Level  string
	Format string // json | console
}

// AuthConfig guards the write endpoints. Browsing needs no key.
type AuthConfig struct {
	APIKey string
}

// S3Config locates catalogue seed files in a bucket.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // key prefix, e.g. "seeds/"
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load reads the configuration. Values from a .env file in the working
// directory fill in variables the environment does not already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "storefront"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "seeds/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.Server.validate()...)
	errs = append(errs, c.Database.validate()...)
	errs = append(errs, c.Logger.validate()...)
	errs = append(errs, c.S3.validate()...)
	if c.Auth.APIKey == "" {
		errs = append(errs, errors.New("API key is required"))
	}

	return errors.Join(errs...)
}

func (c ServerConfig) validate() []error {
	var errs []error
	if !validPort(c.Port) {
		errs = append(errs, fmt.Errorf("invalid server port: %d", c.Port))
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	return errs
}

func (c DatabaseConfig) validate() []error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("database host is required"))
	}
	if !validPort(c.Port) {
		errs = append(errs, fmt.Errorf("invalid database port: %d", c.Port))
	}
	if c.User == "" {
		errs = append(errs, errors.New("database user is required"))
	}
	if c.Database == "" {
		errs = append(errs, errors.New("database name is required"))
	}

	switch {
	case c.MaxConnections < 1:
		errs = append(errs, errors.New("database max connections must be at least 1"))
	case c.MinConnections < 1:
		errs = append(errs, errors.New("database min connections must be at least 1"))
	case c.MinConnections > c.MaxConnections:
		errs = append(errs, errors.New("database min connections cannot exceed max connections"))
	}
	return errs
}

func (c LoggerConfig) validate() []error {
	var errs []error
	if !logLevels[c.Level] {
		errs = append(errs, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level))
	}
	if c.Format != "json" && c.Format != "console" {
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be json or console)", c.Format))
	}
	return errs
}

func (c S3Config) validate() []error {
	if !c.Enabled {
		return nil
	}

	var errs []error
	if c.Bucket == "" {
		errs = append(errs, errors.New("S3 bucket is required when S3 is enabled"))
	}
	if c.Region == "" {
		errs = append(errs, errors.New("S3 region is required when S3 is enabled"))
	}
	return errs
}

func validPort(port int) bool {
	return port >= 1 && port <= 65535
}

// ConnectionString returns the PostgreSQL URL. Credentials are escaped.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Address returns the host:port the server listens on.
func (c *ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts a Go duration ("90s", "5m") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
