package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The database block is optional: when DB_HOST is
// empty the service serves the built-in venue catalog instead of MySQL.
type Config struct {
	Env              string        // application environment (e.g. "dev", "prod")
	Port             string        // HTTP port to listen on
	JWTSecret        string        // secret used to sign session tokens
	SessionTTL       time.Duration // lifetime of a planning session and its state keys
	OptimizerBaseURL string        // base URL of the external layout optimizer service
	DBUser           string        // database username (optional)
	DBPass           string        // database password (optional)
	DBHost           string        // database host; empty disables MySQL
	DBPort           string        // database port number
	DBName           string        // database name
}

// Load reads configuration from environment variables.  Required variables
// are enforced by must() and missing values cause the program to exit with
// a fatal log message; everything else has a sensible default.
func Load() Config {
	return Config{
		Env:              getenv("APP_ENV", "dev"),
		Port:             must("APP_PORT"),
		JWTSecret:        must("JWT_SECRET"),
		SessionTTL:       time.Duration(envInt("SESSION_TTL_HOURS", 72)) * time.Hour,
		OptimizerBaseURL: getenv("OPTIMIZER_BASE_URL", "http://localhost:8000"),
		DBUser:           os.Getenv("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT", "3306"),
		DBName:           getenv("DB_NAME", "seatharmony"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
