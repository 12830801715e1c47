// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Scheduling backend
	BackendURL           string
	BackendFetchTimeout  time.Duration
	BackendSubmitTimeout time.Duration

	// NATS settings (intake event stream; empty URL disables publishing)
	NATSURL   string
	NATSToken string

	// JWT settings (admin surface)
	JWTSecret string

	// Session lifecycle
	IdleWarnAfter  time.Duration
	IdleCloseAfter time.Duration
	SweepInterval  time.Duration

	// Knowledge responder
	ResponderRandom bool

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),

		// Backend
		BackendURL:           getEnv("BACKEND_URL", "http://localhost:3000"),
		BackendFetchTimeout:  getDurationEnv("BACKEND_FETCH_TIMEOUT", 5*time.Second),
		BackendSubmitTimeout: getDurationEnv("BACKEND_SUBMIT_TIMEOUT", 10*time.Second),

		// NATS
		NATSURL:   getEnv("NATS_URL", ""),
		NATSToken: getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// Session lifecycle
		IdleWarnAfter:  getDurationEnv("IDLE_WARN_AFTER", 50*time.Second),
		IdleCloseAfter: getDurationEnv("IDLE_CLOSE_AFTER", 60*time.Second),
		SweepInterval:  getDurationEnv("SWEEP_INTERVAL", 5*time.Second),

		// Responder
		ResponderRandom: getBoolEnv("RESPONDER_RANDOM", false),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
