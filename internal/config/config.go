// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Expo web dev server.
	CORSOrigins []string

	// IPFSDownloadURL is the gateway base that photo links are built from.
	IPFSDownloadURL string

	// MapboxToken enables reverse geocoding. Empty disables it.
	MapboxToken   string
	MapboxBaseURL string

	// JWTSecret is the HS256 key for bearer tokens. Empty leaves the API open.
	JWTSecret string

	MaxBodyBytes   int64
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Each of envFiles (".env" when none are given) is read with godotenv and
// fills in variables the environment leaves unset; a missing file is not an
// error. Returns an error listing any required variables that are not set,
// or naming the first variable that does not parse.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	env, err := newEnv(envFiles)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:            env.get("PORT", "8080"),
		LogLevel:        env.get("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(env.get("CORS_ORIGINS", "http://localhost:19006")),
		IPFSDownloadURL: env.get("IPFS_DOWNLOAD_URL", "https://ipfs.treejer.com/ipfs"),
		MapboxToken:     env.get("MAPBOX_TOKEN", ""),
		MapboxBaseURL:   env.get("MAPBOX_BASE_URL", "https://api.mapbox.com"),
		JWTSecret:       env.get("JWT_SECRET", ""),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("LOG_LEVEL: unknown level %q", cfg.LogLevel)
	}

	cfg.MaxBodyBytes, err = strconv.ParseInt(env.get("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES: must be a positive integer")
	}
	cfg.MigrateOnStart, err = strconv.ParseBool(env.get("MIGRATE_ON_START", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("MIGRATE_ON_START: %w", err)
	}

	var missing []string

	cfg.DatabaseURL = env.get("DATABASE_URL", "")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// env resolves variables from the process environment first, then from the
// values read out of .env files.
type env struct {
	file map[string]string
}

func newEnv(files []string) (env, error) {
	e := env{file: map[string]string{}}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return env{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := e.file[k]; !seen {
				e.file[k] = v
			}
		}
	}
	return e, nil
}

// get returns the value of the variable named by key, or fallback if it is
// not set or is empty.
func (e env) get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := e.file[key]; v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
