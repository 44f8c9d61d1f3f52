package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_DEFAULT_LIMIT", "")
	t.Setenv("PAGE_MAX_LIMIT", "")
	t.Setenv("API_SERVICE_NAME", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.URL, "/vestuario?sslmode=disable")
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, "vestuario-api", cfg.Service.Name)
	assert.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
}

func TestLoadFromEnvFile(t *testing.T) {
	// Registers restoration, then clears so the file can supply the values.
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAGE_DEFAULT_LIMIT", "")
	os.Unsetenv("DB_DRIVER")
	os.Unsetenv("PAGE_DEFAULT_LIMIT")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("DB_DRIVER=memory\nPAGE_DEFAULT_LIMIT=20\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
}

func TestEnvironmentWinsOverEnvFile(t *testing.T) {
	t.Setenv("API_HTTP_PORT", "9090")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("API_HTTP_PORT=7070\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown driver", "DB_DRIVER", "mysql"},
		{"non-numeric port", "API_HTTP_PORT", "eighty"},
		{"zero default limit", "PAGE_DEFAULT_LIMIT", "0"},
		{"max below default", "PAGE_MAX_LIMIT", "5"},
		{"bad sample rate", "OTEL_SAMPLE_RATE", "often"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
