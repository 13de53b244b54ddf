package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion      string
	TodosTable     string
	UsersTable     string
	UsersListTable string
	LocksTable     string

	// Attachments
	AttachmentsBucket   string
	SignedURLExpiration time.Duration

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableItemLocking bool
	EnableMetrics     bool
	EnableTracing     bool
	EnableCORS        bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),

		TodosTable:     getEnv("TODOS_TABLE", "todos"),
		UsersTable:     getEnv("USERS_TABLE", "users"),
		UsersListTable: getEnv("USERS_LIST_TABLE", "users-list"),
		// Lock records carry a PK/SK key schema, so they need their own
		// table rather than piggybacking on the todos table.
		LocksTable: getEnv("LOCKS_TABLE", "locks"),

		AttachmentsBucket:   getEnv("ATTACHMENTS_BUCKET", ""),
		SignedURLExpiration: time.Duration(getEnvInt("SIGNED_URL_EXPIRATION", 300)) * time.Second,

		IsLambda: os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		// Authentication
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "todoshare-backend"),

		// Logging and features
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		EnableItemLocking: getEnvBool("ENABLE_ITEM_LOCKING", false),
		EnableMetrics:     getEnvBool("ENABLE_METRICS", false),
		EnableTracing:     getEnvBool("ENABLE_TRACING", false),
		EnableCORS:        getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.TodosTable == "" || c.UsersTable == "" || c.UsersListTable == "" {
			return fmt.Errorf("TODOS_TABLE, USERS_TABLE and USERS_LIST_TABLE are required")
		}
		if c.AttachmentsBucket == "" {
			return fmt.Errorf("ATTACHMENTS_BUCKET is required in production")
		}
		if c.EnableItemLocking && c.LocksTable == "" {
			return fmt.Errorf("LOCKS_TABLE is required when item locking is enabled")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
