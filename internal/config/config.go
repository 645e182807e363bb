package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	APIBaseURL string
	LogLevel   string
	LogFormat  string
	// RequestTimeout bounds every API call issued through the shared client.
	RequestTimeout time.Duration
	// ValidateTimeout bounds the startup profile-validation call. Kept
	// shorter than RequestTimeout so a slow backend cannot hold the
	// console hostage before the first prompt.
	ValidateTimeout time.Duration
	// CredentialsFile is where the bearer token and cached profile live.
	CredentialsFile string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		APIBaseURL:      getEnv("MARAKI_API_BASE_URL", "http://localhost:3000"),
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		RequestTimeout:  time.Duration(getEnvInt("MARAKI_HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		ValidateTimeout: time.Duration(getEnvInt("MARAKI_VALIDATE_TIMEOUT_SECONDS", 5)) * time.Second,
		CredentialsFile: getEnv("MARAKI_CREDENTIALS_FILE", defaultCredentialsFile()),
	}
}

// defaultCredentialsFile resolves ~/.config/maraki/credentials.json, falling
// back to a relative path when no home directory can be determined.
func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "maraki-credentials.json"
	}
	return filepath.Join(dir, "maraki", "credentials.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
