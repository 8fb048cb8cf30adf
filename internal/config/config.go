package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the project directory when no --config is given.
const DefaultFile = "abacus.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// Config is the full runtime configuration.
// Keys use "mapstructure" tags so YAML files and ABACUS_* variables share one schema.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	HTTP     HTTPConfig  `mapstructure:"http"`
	MCP      MCPConfig   `mapstructure:"mcp"`
	Cache    CacheConfig `mapstructure:"cache"`
	Redis    RedisConfig `mapstructure:"redis"`
	Input    InputConfig `mapstructure:"input"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type InputConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LogLevel: "warn",
		HTTP:     HTTPConfig{Port: "8080"},
		MCP:      MCPConfig{Transport: TransportStdio, Port: 8080},
		Cache:    CacheConfig{Backend: CacheNone},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: "abacus:result:"},
		Input:    InputConfig{MaxSize: 4096},
	}
}

// envKeys maps environment variables to their nested config path.
var envKeys = map[string][]string{
	"ABACUS_LOG_LEVEL":      {"log_level"},
	"ABACUS_HTTP_PORT":      {"http", "port"},
	"ABACUS_MCP_TRANSPORT":  {"mcp", "transport"},
	"ABACUS_MCP_PORT":       {"mcp", "port"},
	"ABACUS_CACHE_BACKEND":  {"cache", "backend"},
	"ABACUS_CACHE_TTL":      {"cache", "ttl"},
	"ABACUS_REDIS_ADDR":     {"redis", "addr"},
	"ABACUS_REDIS_PASSWORD": {"redis", "password"},
	"ABACUS_REDIS_DB":       {"redis", "db"},
	"ABACUS_REDIS_PREFIX":   {"redis", "prefix"},
	"ABACUS_MAX_INPUT_SIZE": {"input", "max_size"},
}

// Load reads the configuration file at path (YAML or JSON) and applies
// ABACUS_* environment overrides on top of Default.
// A missing file is only an error when required is true.
func Load(path string, required bool) (Config, error) {
	return LoadWithEnv(path, required, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, required bool, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			// YAML is a superset of JSON, so one decoder serves both.
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
			}
			if raw == nil {
				raw = map[string]any{}
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for env, keys := range envKeys {
		if val, ok := lookup(env); ok && val != "" {
			setNested(raw, keys, val)
		}
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and numeric fields.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid config: unknown cache backend %q (want none, memory or redis)", c.Cache.Backend)
	}
	switch c.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		return fmt.Errorf("invalid config: unknown mcp transport %q (want stdio or sse)", c.MCP.Transport)
	}
	if c.Input.MaxSize <= 0 {
		return fmt.Errorf("invalid config: input.max_size must be positive, got %d", c.Input.MaxSize)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("invalid config: cache.ttl must not be negative")
	}
	return nil
}

func setNested(m map[string]any, keys []string, val string) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := m[k].(map[string]any)
		if !ok {
			child = map[string]any{}
			m[k] = child
		}
		m = child
	}
	m[keys[len(keys)-1]] = val
}
