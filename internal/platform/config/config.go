package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("STARGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	// Empty DATABASE_URL selects the in-memory stores; useful for local
	// development and the test suite.
	databaseURL := os.Getenv("DATABASE_URL")

	shutdown := 10 * time.Second
	if raw := os.Getenv("STARGATE_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdown = d
		}
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     databaseURL,
		ShutdownTimeout: shutdown,
	}
}
