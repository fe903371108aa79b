package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the service's Prometheus collectors on a private registry so
// tests can build servers without duplicate-registration panics.
type metrics struct {
	registry *prometheus.Registry

	renders       *prometheus.CounterVec
	renderSeconds prometheus.Histogram
	ruleMatches   *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	reloads       prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{registry: prometheus.NewRegistry()}

	m.renders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "semsnip",
		Name:      "renders_total",
		Help:      "Snippet renders by markup format and outcome.",
	}, []string{"format", "outcome"})

	m.renderSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "semsnip",
		Name:      "render_duration_seconds",
		Help:      "Time spent parsing and rendering one document.",
		Buckets:   prometheus.DefBuckets,
	})

	m.ruleMatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "semsnip",
		Name:      "rule_matches_total",
		Help:      "Rule set usage by match key.",
	}, []string{"key"})

	m.fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "semsnip",
		Name:      "fetches_total",
		Help:      "Remote document fetches by outcome.",
	}, []string{"outcome"})

	m.reloads = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "semsnip",
		Name:      "rule_reloads_total",
		Help:      "Rule registry reloads triggered by the watcher.",
	})

	m.registry.MustRegister(m.renders, m.renderSeconds, m.ruleMatches, m.fetches, m.reloads)
	return m
}
