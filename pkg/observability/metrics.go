package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/abacus/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "abacus"

// Metrics records calculator activity as Prometheus series.
type Metrics struct {
	registry *prometheus.Registry

	Calculations  *prometheus.CounterVec
	ParseFailures *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Total number of evaluated expressions",
			},
			[]string{"operator", "outcome"},
		),
		ParseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_failures_total",
				Help:      "Total number of inputs rejected by the tokenizer",
			},
			[]string{"reason"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Result cache lookups by status",
			},
			[]string{"status"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Time spent in a calculation, cache included",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
	}
	m.registry.MustRegister(m.Calculations, m.ParseFailures, m.CacheLookups, m.Duration)
	return m
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCalculated: func(ctx context.Context, e *domain.CalculationEvent) {
			m.observe(e, "ok")
		},
		OnFailed: func(ctx context.Context, e *domain.CalculationEvent) {
			reason := domain.Reason(e.Err)
			if domain.IsParseError(e.Err) {
				m.ParseFailures.WithLabelValues(reason).Inc()
			}
			m.observe(e, reason)
		},
	}
}

func (m *Metrics) observe(e *domain.CalculationEvent, outcome string) {
	operator := "none"
	if e.Expression != nil {
		operator = e.Expression.Operator.String()
	}
	m.Calculations.WithLabelValues(operator, outcome).Inc()
	if e.Cache != domain.CacheBypass {
		m.CacheLookups.WithLabelValues(string(e.Cache)).Inc()
	}
	m.Duration.Observe(e.Duration.Seconds())
}
