// Package config provides configuration management for the blog application.
// It handles loading and validation of configuration values from environment variables,
// with support for required variables, default values, and collective error reporting.
package config

import (
	"fmt"
	// `os` package provides operating system functionalities, like reading environment variables.
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI      string
	Database string
}

// PoolConfig represents configuration for a PostgreSQL connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Driver   string
	Mongo    *MongoConfig
	Postgres *PoolConfig
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret            string        // Secret key for signing JWTs
	AccessTokenDuration  time.Duration // Duration for access tokens
	RefreshTokenDuration time.Duration // Duration for refresh tokens
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string // Port for the HTTP server
	AllowedOrigins []string
	RequestTimeout time.Duration
	// StreamTimeout bounds a single SSE connection; streams are exempt from RequestTimeout.
	StreamTimeout time.Duration
}

// UploadConfig configures the local image store.
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// CacheConfig configures the optional redis cache. An empty Addr disables it.
type CacheConfig struct {
	Addr        string
	Password    string
	DB          int
	CategoryTTL time.Duration
}

// LogConfig configures the logrus logger.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Store  *StoreConfig
	Auth   *AuthConfig
	Server *ServerConfig
	Upload *UploadConfig
	Cache  *CacheConfig
	Log    *LogConfig
}

// Helper function to get a required environment variable.
// Appends an error to the errors slice if the variable is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// Helper function to get an optional environment variable with a default string value.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get an optional environment variable parsed as an int.
// Uses defaultValue if not set or if parsing fails. Appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// Helper function to get an optional environment variable parsed as time.Duration.
// `time.ParseDuration` expects a string like "15m", "1h30s".
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// clampPoolSize keeps the postgres pool size between 5 and 100.
func clampPoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100", varName, size))
		return 100
	}
	return size
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	// `errors` slice collects all validation/parsing errors during config loading.
	var errors []string

	// Store Configuration
	store := &StoreConfig{Driver: strings.ToLower(getOptionalEnv("STORE_DRIVER", StoreMongo))}
	switch store.Driver {
	case StoreMongo:
		store.Mongo = &MongoConfig{
			URI:      getOptionalEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getOptionalEnv("MONGODB_DATABASE", "blog"),
		}
	case StorePostgres:
		store.Postgres = &PoolConfig{
			Host:     getOptionalEnv("DB_HOST", "localhost"),
			Port:     getOptionalEnvInt("DB_PORT", 5432, &errors),
			User:     getRequiredEnv("DB_USER", &errors),
			Password: getRequiredEnv("DB_PASSWORD", &errors),
			DBName:   getRequiredEnv("DB_NAME", &errors),
		}
		store.Postgres.MaxSize = clampPoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)
	case StoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid value for STORE_DRIVER: %q (expected mongo, postgres or memory)", store.Driver))
	}

	// Auth Configuration
	authConfig := &AuthConfig{
		JWTSecret:            getRequiredEnv("JWT_SECRET", &errors),
		AccessTokenDuration:  getOptionalEnvDuration("JWT_ACCESS_TOKEN_DURATION", 15*time.Minute, &errors),
		RefreshTokenDuration: getOptionalEnvDuration("JWT_REFRESH_TOKEN_DURATION", 168*time.Hour, &errors), // 7 days
	}

	// Server Configuration
	serverConfig := &ServerConfig{
		// Server port is kept as a string because it's used directly in the listen address (":8080").
		Port:           getOptionalEnv("PORT", "8080"),
		AllowedOrigins: splitList(getOptionalEnv("CORS_ALLOWED_ORIGINS", "*")),
		RequestTimeout: getOptionalEnvDuration("REQUEST_TIMEOUT", 60*time.Second, &errors),
		StreamTimeout:  getOptionalEnvDuration("STREAM_TIMEOUT", 30*time.Minute, &errors),
	}

	uploadConfig := &UploadConfig{
		Dir:     getOptionalEnv("UPLOAD_DIR", "uploads"),
		MaxSize: int64(getOptionalEnvInt("MAX_UPLOAD_SIZE", 5*1024*1024, &errors)),
	}
	if uploadConfig.MaxSize <= 0 {
		errors = append(errors, "MAX_UPLOAD_SIZE must be positive")
	}

	cacheConfig := &CacheConfig{
		Addr:        getOptionalEnv("REDIS_ADDR", ""),
		Password:    getOptionalEnv("REDIS_PASSWORD", ""),
		DB:          getOptionalEnvInt("REDIS_DB", 0, &errors),
		CategoryTTL: getOptionalEnvDuration("CATEGORY_CACHE_TTL", 5*time.Minute, &errors),
	}

	logConfig := &LogConfig{
		Level:  getOptionalEnv("LOG_LEVEL", "info"),
		Format: getOptionalEnv("LOG_FORMAT", "text"),
	}

	// If any errors were collected during loading, return a single aggregated error message.
	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		Store:  store,
		Auth:   authConfig,
		Server: serverConfig,
		Upload: uploadConfig,
		Cache:  cacheConfig,
		Log:    logConfig,
	}, nil
}
