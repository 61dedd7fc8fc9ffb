package config

import (
	"crypto/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"auction-house/utils"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Session SessionConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// MongoConfig holds document store settings
type MongoConfig struct {
	URI          string
	Database     string
	QueryTimeout time.Duration
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret     []byte
	CookieName string
}

// Load reads configuration from the environment, loading a .env file
// first when one is present. Missing values fall back to defaults so a
// bare local run works out of the box.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.Info("No .env file found, using environment variables", nil)
	}

	return Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:     getEnv("MONGO_DB", "auction_house"),
			QueryTimeout: getEnvDuration("DB_QUERY_TIMEOUT", 5*time.Second),
		},
		Session: SessionConfig{
			Secret:     sessionSecret(),
			CookieName: getEnv("SESSION_NAME", "auction_session"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	utils.Warn("Invalid duration value, using default", map[string]any{
		"key":     key,
		"value":   v,
		"default": fallback.String(),
	})
	return fallback
}

// sessionSecret returns SESSION_SECRET, or a random per-process secret
// when unset. A random secret invalidates sessions across restarts.
func sessionSecret() []byte {
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		return []byte(v)
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		utils.Fatal("Failed to generate session secret", map[string]any{"error": err.Error()})
	}
	utils.Warn("SESSION_SECRET not set, generated a per-process secret", nil)
	return secret
}
