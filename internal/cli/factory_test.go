package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/abacus/internal/config"
	"github.com/aretw0/abacus/internal/logging"
	"github.com/aretw0/abacus/pkg/adapters/memory"
	"github.com/aretw0/abacus/pkg/adapters/redis"
	"github.com/aretw0/abacus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(content), 0644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	t.Run("Missing default file uses defaults", func(t *testing.T) {
		cfg, err := loadConfig(Options{Dir: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, config.CacheNone, cfg.Cache.Backend)
	})

	t.Run("Reads abacus.yaml from dir", func(t *testing.T) {
		dir := writeConfig(t, "cache:\n  backend: memory\n")
		cfg, err := loadConfig(Options{Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, config.CacheMemory, cfg.Cache.Backend)
	})

	t.Run("Explicit config must exist", func(t *testing.T) {
		_, err := loadConfig(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, err)
	})

	t.Run("Debug raises the log level", func(t *testing.T) {
		cfg, err := loadConfig(Options{Dir: t.TempDir(), Debug: true})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestCreateCache(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	t.Run("None", func(t *testing.T) {
		cache, closeFn, err := createCache(ctx, config.Default(), logger)
		require.NoError(t, err)
		assert.Nil(t, cache)
		assert.NoError(t, closeFn())
	})

	t.Run("Memory", func(t *testing.T) {
		cfg := config.Default()
		cfg.Cache.Backend = config.CacheMemory
		cache, _, err := createCache(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &memory.Cache{}, cache)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Cache.Backend = config.CacheRedis
		cfg.Redis.Addr = mr.Addr()

		cache, closeFn, err := createCache(ctx, cfg, logger)
		require.NoError(t, err)
		assert.IsType(t, &redis.Cache{}, cache)
		assert.NoError(t, closeFn())
	})

	t.Run("Redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := config.Default()
		cfg.Cache.Backend = config.CacheRedis
		cfg.Redis.Addr = addr

		_, _, err := createCache(ctx, cfg, logger)
		assert.Error(t, err)
	})
}

func TestCreateCalculator_UsesCacheAndHooks(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Redis.Addr = mr.Addr()

	var statuses []domain.CacheStatus
	hooks := domain.LifecycleHooks{
		OnCalculated: func(ctx context.Context, e *domain.CalculationEvent) {
			statuses = append(statuses, e.Cache)
		},
	}

	calc, closeFn, err := createCalculator(context.Background(), cfg, logging.NewNop(), hooks)
	require.NoError(t, err)
	defer closeFn()

	for i := 0; i < 2; i++ {
		res, err := calc.Calculate(context.Background(), "6 * 9")
		require.NoError(t, err)
		assert.Equal(t, "54.00000", res.Answer)
	}
	assert.Equal(t, []domain.CacheStatus{domain.CacheMiss, domain.CacheHit}, statuses)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+"6*9"))
}

func TestChainHooks(t *testing.T) {
	var calls []string
	chained := chainHooks(
		domain.LifecycleHooks{OnFailed: func(ctx context.Context, e *domain.CalculationEvent) { calls = append(calls, "a") }},
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnFailed: func(ctx context.Context, e *domain.CalculationEvent) { calls = append(calls, "b") }},
	)
	chained.OnCalculated(context.Background(), &domain.CalculationEvent{})
	chained.OnFailed(context.Background(), &domain.CalculationEvent{})
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestEval(t *testing.T) {
	opts := Options{Dir: t.TempDir()}

	var out bytes.Buffer
	require.NoError(t, Eval(opts, "3 + pi", &out))
	assert.Equal(t, "Answer: 6.14100\n", out.String())

	out.Reset()
	err := Eval(opts, "5/0", &out)
	assert.True(t, errors.Is(err, domain.ErrDivisionByZero))
	assert.Equal(t, "Cannot divide by 0\n", out.String())

	out.Reset()
	err = Eval(opts, "hello", &out)
	assert.True(t, errors.Is(err, domain.ErrNoOperator))
	assert.Equal(t, "There was an error in the input string, please try again...\n", out.String())
}

func TestSelfTest(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, SelfTest(Options{Dir: t.TempDir()}, &out))
	assert.Contains(t, out.String(), "Self test passed")
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(io.EOF))
	assert.Error(t, handleExecutionError(errors.New("boom")))
}

func TestLogCompletion(t *testing.T) {
	var out bytes.Buffer
	logCompletion(&out, true, context.Canceled, false, os.Interrupt)
	assert.Equal(t, "[CTRL+C]\n>>> Interrupted.\n", out.String())

	out.Reset()
	logCompletion(&out, true, nil, true, nil)
	assert.Empty(t, out.String())
}
