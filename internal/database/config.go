package database

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, mysql, sqlite)
	Driver string `envconfig:"DB_DRIVER" default:"sqlite"`

	// Server configuration shared by PostgreSQL and MySQL
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT"`
	User     string `envconfig:"DB_USER" default:"store_rating"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"store_rating"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// SQLite-specific configuration
	Path string `envconfig:"DB_PATH" default:"store_rating.sqlite"`
}

// LoadConfigFromEnv reads the DB_* environment variables
func LoadConfigFromEnv() (DatabaseConfig, error) {
	var cfg DatabaseConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return DatabaseConfig{}, fmt.Errorf("load database config: %w", err)
	}
	cfg.Driver = strings.ToLower(cfg.Driver)
	if cfg.Port == "" {
		cfg.Port = defaultPort(cfg.Driver)
	}
	return cfg, nil
}

func defaultPort(driver string) string {
	switch driver {
	case "postgres", "postgresql":
		return "5432"
	case "mysql":
		return "3306"
	default:
		return ""
	}
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	switch strings.ToLower(c.Driver) {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}

// InMemory reports whether the config points at a private in-memory SQLite database
func (c *DatabaseConfig) InMemory() bool {
	driver := strings.ToLower(c.Driver)
	return (driver == "sqlite" || driver == "") && strings.Contains(c.Path, ":memory:")
}
