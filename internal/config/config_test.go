package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), DefaultFile), false, noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), true, noEnv)
	assert.Error(t, err)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "abacus.yaml", `
log_level: debug
http:
  port: 9090
cache:
  backend: redis
  ttl: 5m
redis:
  addr: redis:6379
  db: 2
`)
	cfg, err := LoadWithEnv(path, true, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	// Untouched keys keep their defaults.
	assert.Equal(t, "abacus:result:", cfg.Redis.Prefix)
	assert.Equal(t, 4096, cfg.Input.MaxSize)
	assert.Equal(t, "stdio", cfg.MCP.Transport)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "abacus.json", `{"cache": {"backend": "memory"}, "input": {"max_size": 128}}`)
	cfg, err := LoadWithEnv(path, true, noEnv)
	require.NoError(t, err)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 128, cfg.Input.MaxSize)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "abacus.yaml", "cache:\n  backend: memory\n")
	cfg, err := LoadWithEnv(path, true, envMap(map[string]string{
		"ABACUS_CACHE_BACKEND":  "redis",
		"ABACUS_REDIS_DB":       "3",
		"ABACUS_CACHE_TTL":      "30s",
		"ABACUS_MAX_INPUT_SIZE": "64",
		"ABACUS_MCP_PORT":       "7070",
	}))
	require.NoError(t, err)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 64, cfg.Input.MaxSize)
	assert.Equal(t, 7070, cfg.MCP.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown Key", "colour: blue\n"},
		{"Bad Backend", "cache:\n  backend: memcached\n"},
		{"Bad Transport", "mcp:\n  transport: websocket\n"},
		{"Zero Input Size", "input:\n  max_size: 0\n"},
		{"Bad Duration", "cache:\n  ttl: soon\n"},
		{"Malformed YAML", "cache: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "abacus.yaml", tt.content)
			_, err := LoadWithEnv(path, true, noEnv)
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, "abacus.yaml", "")
	cfg, err := LoadWithEnv(path, true, noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
