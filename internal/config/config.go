// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required variables are enforced by must() at
// startup; optional collaborators (image relay, event broker) stay empty
// when unconfigured and the features that need them degrade or refuse.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	MongoURI          string // MongoDB connection string
	MongoDB           string // MongoDB database name
	JWTSecret         string // secret used to sign admin session tokens
	AdminPasswordHash string // bcrypt hash of the shared admin password
	TokenTTLMin       int    // admin token time-to-live in minutes
	ImageRelayURL     string // upload endpoint of the external image host (optional)
	ImageRelayKey     string // API key for the image host (optional)
	BrokerURL         string // AMQP broker URL for lifecycle events (optional)
}

// Load reads configuration values from environment variables and returns a
// Config. Missing required variables cause the program to exit with a
// fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		MongoURI:          must("MONGO_URI"),
		MongoDB:           must("MONGO_DB"),
		JWTSecret:         must("JWT_SECRET"),
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),
		TokenTTLMin:       mustInt("ADMIN_TOKEN_TTL_MIN"),
		ImageRelayURL:     os.Getenv("IMAGE_RELAY_URL"),
		ImageRelayKey:     os.Getenv("IMAGE_RELAY_KEY"),
		BrokerURL:         os.Getenv("BROKER_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
