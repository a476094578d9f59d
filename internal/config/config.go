package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      *AppConfig      `yaml:"app"`
	Database *DatabaseConfig `yaml:"database"`
	Auth     *AuthConfig     `yaml:"auth"`
	SMTP     *SMTPConfig     `yaml:"smtp"`
	SMS      *SMSConfig      `yaml:"sms"`
	Storage  *StorageConfig  `yaml:"storage"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	LogLevel    string `yaml:"log_level"`
}

type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"`
	TokenTTL           time.Duration `yaml:"token_ttl"`
	AllowedAdminEmails []string      `yaml:"allowed_admin_emails"`
	SuperAdminSecret   string        `yaml:"super_admin_secret"`
	FrontendURL        string        `yaml:"frontend_url"`
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Auth:     loadAuthConfig(),
		SMTP:     loadSMTPConfig(),
		SMS:      loadSMSConfig(),
		Storage:  loadStorageConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "RoadWatch"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("PORT", 5000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func loadAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:          getEnv("JWT_SECRET", "change_this_secret"),
		TokenTTL:           getEnvAsDuration("JWT_TOKEN_TTL", 30*24*time.Hour),
		AllowedAdminEmails: getEnvAsSlice("ALLOWED_ADMIN_EMAILS", []string{}),
		SuperAdminSecret:   getEnv("SUPER_ADMIN_SECRET", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000/"),
	}
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func IsProduction() bool {
	return getEnv("APP_ENV", "development") == "production"
}

func IsDevelopment() bool {
	return getEnv("APP_ENV", "development") == "development"
}
