/*
Package observability exposes calculator activity as Prometheus metrics.

Metrics plugs into the calculator through domain.LifecycleHooks, so the core
pipeline stays free of any metrics dependency:

	m := observability.NewMetrics()
	calc := abacus.New(abacus.WithLifecycleHooks(m.Hooks()))
	http.Handle("/metrics", m.Handler())
*/
package observability
