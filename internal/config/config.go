// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies, photo uploads included. Defaults to 10 MiB.
	MaxBodyBytes int64

	// DatabaseURL is the Postgres endpoint of the remote backend.
	DatabaseURL string

	// DatabaseServiceKey is the privileged credential for the remote backend,
	// used as the connection password. The remote backend is enabled only
	// when both DatabaseURL and DatabaseServiceKey are set.
	DatabaseServiceKey string

	// StorageBucket names the photo bucket. Image references are stripped of
	// everything up to the bucket name to find the blob key. Defaults to "photos".
	StorageBucket string

	// StorageEndpoint, StorageAccessKeyID and StorageSecretAccessKey enable the
	// S3-compatible blob store when all three are set.
	StorageEndpoint        string
	StorageRegion          string
	StorageAccessKeyID     string
	StorageSecretAccessKey string

	// StoragePublicURL is the base of public image URLs. Defaults to StorageEndpoint.
	StoragePublicURL string

	// PhotoLocalPath is where photos are written when S3 is not configured.
	PhotoLocalPath string
}

// Load reads configuration from environment variables and returns a Config.
// No variable is required; malformed numeric values are reported as errors.
func Load() (Config, error) {
	cfg := Config{
		Port:                   getEnv("PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		CORSOrigins:            splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		DatabaseServiceKey:     os.Getenv("DATABASE_SERVICE_KEY"),
		StorageBucket:          getEnv("STORAGE_BUCKET", "photos"),
		StorageEndpoint:        os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:          getEnv("STORAGE_REGION", "us-east-1"),
		StorageAccessKeyID:     os.Getenv("STORAGE_ACCESS_KEY_ID"),
		StorageSecretAccessKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		PhotoLocalPath:         getEnv("PHOTO_LOCAL_PATH", "./data/photos"),
	}
	cfg.StoragePublicURL = strings.TrimSuffix(getEnv("STORAGE_PUBLIC_URL", cfg.StorageEndpoint), "/")

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "10485760"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}
	cfg.MaxBodyBytes = maxBody

	return cfg, nil
}

// RemoteMissing returns the names of the remote-backend variables that are
// not set. An empty result means the remote backend is enabled.
func (c Config) RemoteMissing() []string {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.DatabaseServiceKey == "" {
		missing = append(missing, "DATABASE_SERVICE_KEY")
	}
	return missing
}

// S3Enabled reports whether the S3-compatible blob store is configured.
func (c Config) S3Enabled() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKeyID != "" && c.StorageSecretAccessKey != ""
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
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
