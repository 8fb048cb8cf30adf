package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/internal/config"
	"github.com/aretw0/abacus/internal/logging"
	"github.com/aretw0/abacus/pkg/adapters/memory"
	"github.com/aretw0/abacus/pkg/adapters/redis"
	"github.com/aretw0/abacus/pkg/domain"
	"github.com/aretw0/abacus/pkg/ports"
)

const redisPingTimeout = 2 * time.Second

// loadConfig resolves the config file for opts and loads it.
func loadConfig(opts Options) (config.Config, error) {
	path, required := opts.ConfigPath, true
	if path == "" {
		path, required = filepath.Join(opts.Dir, config.DefaultFile), false
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, err
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// createLogger configures the application logger.
// Logs always go to w (stderr) so they never mix with answers on stdout.
func createLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return logging.NewWithWriter(w, logging.ParseLevel(cfg.LogLevel))
}

// createCache builds the result cache selected by cfg.
// The returned close function is never nil.
func createCache(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Cache.Backend {
	case config.CacheMemory:
		logger.Debug("Using in-memory result cache", "ttl", cfg.Cache.TTL)
		return memory.NewCache(memory.WithTTL(cfg.Cache.TTL)), noop, nil
	case config.CacheRedis:
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Cache.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, noop, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis result cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return cache, cache.Close, nil
	}
	return nil, noop, nil
}

// createCalculator wires a Calculator with the configured cache and hooks.
func createCalculator(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*abacus.Calculator, func() error, error) {
	cache, closeCache, err := createCache(ctx, cfg, logger)
	if err != nil {
		return nil, closeCache, err
	}

	opts := []abacus.Option{abacus.WithLogger(logger)}
	if cache != nil {
		opts = append(opts, abacus.WithCache(cache))
	}
	opts = append(opts, abacus.WithLifecycleHooks(chainHooks(append([]domain.LifecycleHooks{createDebugHooks(logger)}, hooks...)...)))

	return abacus.New(opts...), closeCache, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculated: func(ctx context.Context, e *domain.CalculationEvent) {
			logger.Debug("Calculated", "input", e.Input, "value", e.Value, "cache", e.Cache, "duration", e.Duration)
		},
		OnFailed: func(ctx context.Context, e *domain.CalculationEvent) {
			logger.Debug("Calculation failed", "input", e.Input, "reason", domain.Reason(e.Err))
		},
	}
}

// chainHooks fans each event out to every non-nil hook in order.
func chainHooks(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculated: func(ctx context.Context, e *domain.CalculationEvent) {
			for _, h := range hooks {
				if h.OnCalculated != nil {
					h.OnCalculated(ctx, e)
				}
			}
		},
		OnFailed: func(ctx context.Context, e *domain.CalculationEvent) {
			for _, h := range hooks {
				if h.OnFailed != nil {
					h.OnFailed(ctx, e)
				}
			}
		},
	}
}
