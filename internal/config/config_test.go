package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/backend/internal/config"
)

// clearEnv blanks every variable Load reads so tests do not depend on the
// developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "MAX_BODY_BYTES",
		"DATABASE_URL", "DATABASE_SERVICE_KEY",
		"STORAGE_BUCKET", "STORAGE_ENDPOINT", "STORAGE_REGION",
		"STORAGE_ACCESS_KEY_ID", "STORAGE_SECRET_ACCESS_KEY", "STORAGE_PUBLIC_URL",
		"PHOTO_LOCAL_PATH",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every setting falls back to its default
// and that the remote backend is reported as not configured.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
	require.Equal(t, "photos", cfg.StorageBucket)
	require.Equal(t, "us-east-1", cfg.StorageRegion)
	require.Equal(t, "./data/photos", cfg.PhotoLocalPath)
	require.Equal(t, []string{"DATABASE_URL", "DATABASE_SERVICE_KEY"}, cfg.RemoteMissing())
	require.False(t, cfg.S3Enabled())
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://postgres@db.example.supabase.co:5432/postgres")
	t.Setenv("DATABASE_SERVICE_KEY", "service-role-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("STORAGE_ENDPOINT", "https://example.supabase.co/storage/v1/s3")
	t.Setenv("STORAGE_ACCESS_KEY_ID", "key")
	t.Setenv("STORAGE_SECRET_ACCESS_KEY", "secret")
	t.Setenv("STORAGE_PUBLIC_URL", "https://example.supabase.co/storage/v1/object/public/")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.Empty(t, cfg.RemoteMissing())
	require.True(t, cfg.S3Enabled())
	require.Equal(t, "https://example.supabase.co/storage/v1/object/public", cfg.StoragePublicURL)
}

// TestLoad_publicURLDefaultsToEndpoint verifies the public image base falls
// back to the S3 endpoint.
func TestLoad_publicURLDefaultsToEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_ENDPOINT", "http://localhost:9000")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000", cfg.StoragePublicURL)
}

// TestRemoteMissing_urlWithoutKey verifies that a URL without a credential still
// leaves the remote backend disabled and names the missing variable.
func TestRemoteMissing_urlWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/wayfarer")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, []string{"DATABASE_SERVICE_KEY"}, cfg.RemoteMissing())
}

// TestLoad_badMaxBody verifies that a malformed size is rejected and named.
func TestLoad_badMaxBody(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
