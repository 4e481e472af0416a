// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds the application settings.
type Config struct {
	HTTPPort        int
	APIRoot         string
	DBDriver        string
	DBDSN           string
	DBDebug         bool
	DBMaxOpenConns  int
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// Load reads the optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8000),
		APIRoot:         normalizeRoot(getEnv("API_ROOT", "/api/tasks")),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBDSN:           getEnv("DB_DSN", "todo.db"),
		DBDebug:         getEnvBool("DB_DEBUG", false),
		DBMaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s, %s or %s)",
			cfg.DBDriver, DriverSQLite, DriverPostgres, DriverMySQL)
	}

	return cfg, nil
}

// normalizeRoot makes the API root absolute and strips any trailing slash.
func normalizeRoot(root string) string {
	root = "/" + strings.Trim(root, "/")
	if root == "/" {
		return ""
	}
	return root
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
