package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	BackendBaseURL string
	TenantID       string
	Port           string
	IsProduction   bool
	BackendTimeout time.Duration
	// Operator session
	SessionSecret         string
	SessionExpiryDuration time.Duration
	// Rate limiting, in ulule/limiter formatted-rate form, e.g. "100-M"
	RateLimit string
	// CORS
	AllowedOrigin string
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:4000/api")
	viper.SetDefault("TENANT_ID", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BACKEND_TIMEOUT", "30s")
	viper.SetDefault("SESSION_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SESSION_EXPIRY_DURATION", "12h")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("ALLOWED_ORIGIN", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.BackendBaseURL = viper.GetString("BACKEND_BASE_URL")
	if cfg.BackendBaseURL == "" {
		log.Println("Warning: BACKEND_BASE_URL environment variable not set.")
	}

	cfg.TenantID = viper.GetString("TENANT_ID")
	if cfg.TenantID == "" {
		log.Println("Warning: TENANT_ID environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	backendTimeoutStr := viper.GetString("BACKEND_TIMEOUT")
	backendTimeout, err := time.ParseDuration(backendTimeoutStr)
	if err != nil {
		backendTimeout = 30 * time.Second
		if backendTimeoutStr != "" {
			log.Printf("Warning: Invalid value for BACKEND_TIMEOUT ('%s'). Defaulting to %s.\n", backendTimeoutStr, backendTimeout)
		}
	}
	cfg.BackendTimeout = backendTimeout

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: SESSION_SECRET not set. Using default insecure key.")
	}

	sessionExpiryStr := viper.GetString("SESSION_EXPIRY_DURATION")
	sessionExpiry, err := time.ParseDuration(sessionExpiryStr)
	if err != nil {
		sessionExpiry = 12 * time.Hour
		if sessionExpiryStr != "" {
			log.Printf("Warning: Invalid value for SESSION_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", sessionExpiryStr, sessionExpiry)
		}
	}
	cfg.SessionExpiryDuration = sessionExpiry

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.AllowedOrigin = viper.GetString("ALLOWED_ORIGIN")

	return cfg, nil
}
