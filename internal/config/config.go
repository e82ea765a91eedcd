package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	UploadDir    string
	PublicPrefix string // URL prefix uploaded files are served under
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
}

func LoadConfig() (*Config, error) {
	// A local .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file")
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8585"),
		DBPath:       getEnv("DB_PATH", "./iasminsantos.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "static/uploads"),
		PublicPrefix: getEnv("UPLOAD_PUBLIC_PREFIX", "/static/uploads"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey reads a base64-encoded 32-byte key from the environment, falling
// back to a random development key. Random keys invalidate sessions/tokens on
// every restart, so production must set them explicitly.
func loadKey(envVar string) []byte {
	raw := os.Getenv(envVar)
	if raw == "" {
		slog.Warn("Key not set; generating a random development key. Set it in production!", "var", envVar)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key is invalid or shorter than 32 bytes; generating a random development key. Set a secure value in production!", "var", envVar)
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback to a less secure random string if crypto/rand fails
		// This fallback is only for panic prevention, not for production use
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		// Ensure the fallback key is at least n bytes long
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
