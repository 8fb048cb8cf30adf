package observability_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/abacus"
	"github.com/aretw0/abacus/pkg/adapters/memory"
	"github.com/aretw0/abacus/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	calc := abacus.New(
		abacus.WithLifecycleHooks(m.Hooks()),
		abacus.WithCache(memory.NewCache()),
	)
	ctx := context.Background()

	_, _ = calc.Calculate(ctx, "6*9")
	_, _ = calc.Calculate(ctx, "6 * 9")
	_, _ = calc.Calculate(ctx, "5/0")
	_, _ = calc.Calculate(ctx, "abc")
	_, _ = calc.Calculate(ctx, "x+1")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calculations.WithLabelValues("multiply", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("divide", "division_by_zero")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("none", "no_operator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseFailures.WithLabelValues("no_operator")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ParseFailures.WithLabelValues("invalid_left_operand")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	calc := abacus.New(abacus.WithLifecycleHooks(m.Hooks()))
	_, _ = calc.Calculate(context.Background(), "1+1")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `abacus_calculations_total{operator="add",outcome="ok"} 1`)
	assert.Contains(t, string(body), "abacus_calculation_duration_seconds_bucket")
}
