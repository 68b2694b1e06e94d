package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// DefaultJWTSecret is only acceptable outside production
const DefaultJWTSecret = "secret"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port        int    `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret          string        `json:"jwt_secret"`
	JWTTTL             time.Duration `json:"jwt_ttl"`
	CORSAllowedOrigins []string      `json:"cors_allowed_origins"`

	// Bootstrap administrator, created on startup when both email and password are set
	SeedAdminName     string `json:"seed_admin_name"`
	SeedAdminEmail    string `json:"seed_admin_email"`
	SeedAdminPassword string `json:"seed_admin_password"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, LogLevel: %s, JWTSecret: [REDACTED], JWTTTL: %s, CORSAllowedOrigins: %v, SeedAdminEmail: %s, SeedAdminPassword: [REDACTED]}",
		c.Port, c.Host, c.Environment, c.LogLevel, c.JWTTTL, c.CORSAllowedOrigins, c.SeedAdminEmail)
}

// SeedAdminEnabled reports whether a bootstrap administrator is configured
func (c *Config) SeedAdminEnabled() bool {
	return c.SeedAdminEmail != "" && c.SeedAdminPassword != ""
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	ttlMinutes := GetEnvAsType("JWT_TTL_MINUTES", 60)
	if ttlMinutes <= 0 {
		return nil, errors.New("JWT_TTL_MINUTES must be a positive number of minutes")
	}

	config := &Config{
		Port:               port,
		Host:               GetEnvWithDefault("APP_HOST", "localhost"),
		Environment:        GetEnvWithDefault("APP_ENV", "development"),
		LogLevel:           GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:          GetEnvWithDefault("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:             time.Duration(ttlMinutes) * time.Minute,
		CORSAllowedOrigins: splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "*")),
		SeedAdminName:      GetEnvWithDefault("SEED_ADMIN_NAME", "System Administrator Account"),
		SeedAdminEmail:     os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword:  os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if config.Environment == "production" && config.JWTSecret == DefaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// splitList parses a comma separated list, dropping empty entries
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value", key)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
