// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// DataDir holds users.json, items.json and bills.json.
	DataDir string
	// StoreBackend is "json" or "memory".
	StoreBackend string

	LogLevel string
	// LogFile receives logs instead of stderr when set.
	LogFile string

	SessionSecret string
	SessionTTL    time.Duration

	// MetricsPath is where the Prometheus textfile is written on exit. Empty disables it.
	MetricsPath string

	// Currency prefixes every amount shown to users.
	Currency string

	// Seed administrator, created or promoted at startup when AdminEmail is set.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads ENV_FILE (default .env) if it exists, then the environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		DataDir:       getEnv("DATA_DIR", "./data"),
		StoreBackend:  getEnv("STORE_BACKEND", "json"),
		LogLevel:      getEnv("LOG_LEVEL", "warn"),
		LogFile:       getEnv("LOG_FILE", ""),
		SessionSecret: secret,
		SessionTTL:    ttl,
		MetricsPath:   getEnv("METRICS_PATH", ""),
		Currency:      getEnv("CURRENCY", "Rs."),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

// randomSecret signs sessions when no secret is configured; tokens then die with the process.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
