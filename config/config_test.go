package config

import (
	"os"
	"path/filepath"
	"testing"

	validation "github.com/iamNilotpal/crcsum/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crcsum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
engine: bytewise
codec: auto
block_size: 65536
concurrency: 8
rate_limit: 1048576
exclude: [".git", "node_modules"]
s3:
  endpoint: localhost:9000
  access_key: minio
  secret_key: minio123
  secure: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "bytewise", cfg.Engine)
	assert.Equal(t, "auto", cfg.Codec)
	assert.Equal(t, uint32(65536), cfg.BlockSize)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, int64(1048576), cfg.RateLimit)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.Exclude)
	assert.Equal(t, S3Config{Endpoint: "localhost:9000", AccessKey: "minio", SecretKey: "minio123"}, cfg.S3)

	// Untouched keys keep their defaults.
	assert.Equal(t, 256*1024, cfg.ReadSize)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestZeroConcurrencyUsesDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "concurrency: 0"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Concurrency)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "engine: [unclosed"))
	assert.Error(t, err)

	tests := map[string]string{
		"engine: crc64":      "engine",
		"codec: brotli":      "codec",
		"concurrency: -1":    "concurrency",
		"concurrency: 257":   "concurrency",
		"rate_limit: -1":     "rate_limit",
		"read_size: -1":      "read_size",
		"log_level: verbose": "log_level",
		"s3: {endpoint: 'localhost:9000', access_key: a}": "s3.access_key",
	}
	for body, field := range tests {
		_, err := LoadConfig(writeConfig(t, body))
		ve := validation.AsValidationError(err)
		require.NotNil(t, ve, body)
		assert.Equal(t, field, ve.Field, body)
	}
}
