package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/abacus/pkg/domain"
	"github.com/aretw0/abacus/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ResultCacheContractTest is a reusable test suite that verifies if an adapter complies with ports.ResultCache.
func ResultCacheContractTest(t *testing.T, cache ports.ResultCache) {
	t.Helper()

	ctx := context.Background()
	key := "6*9-" + time.Now().Format("20060102150405")
	result := domain.NewResult("6 * 9", domain.Expression{Left: 6, Right: 9, Operator: domain.OpMultiply}, 54)

	t.Run("Set and Get", func(t *testing.T) {
		err := cache.Set(ctx, key, result)
		require.NoError(t, err, "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, result.Expression, got.Expression)
		assert.InDelta(t, result.Value, got.Value, 1e-9)
		assert.Equal(t, "54.00000", got.Answer)
		assert.Equal(t, result.Input, got.Input)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := domain.NewResult("6*9", result.Expression, 54)
		require.NoError(t, cache.Set(ctx, key, replacement))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "6*9", got.Input)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, result))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting a missing key should succeed")
	})
}
