package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	CatalogPath string
	EnchantPath string
	AliasesPath string
	APIKey      string // API key for authentication

	TrustedProxies  []string
	DBEnabled       bool
	SaveIntervalSec int
	BuffTickSec     int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "emberwake"),
		Version:     getEnv("SERVICE_VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "emberwake"),
		CatalogPath: getEnv("CATALOG_PATH", ConfigPathItems),
		EnchantPath: getEnv("ENCHANT_PATH", ConfigPathEnchantments),
		AliasesPath: getEnv("ALIASES_PATH", ConfigPathAliases),
		APIKey:      getEnv("API_KEY", ""),
		DBEnabled:   getEnv("DB_ENABLED", "true") == "true",
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.SaveIntervalSec, err = getEnvInt("SAVE_INTERVAL_SEC", DefaultSaveIntervalSec)
	if err != nil {
		return nil, err
	}
	cfg.BuffTickSec, err = getEnvInt("BUFF_TICK_SEC", DefaultBuffTickSec)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
