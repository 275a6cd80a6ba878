// Package metrics counts what a selection run did and writes the counters in
// the Prometheus text format, for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wifimenu"

// Metrics holds the counters of one run. A nil *Metrics discards everything.
type Metrics struct {
	Registry *prometheus.Registry

	passes      prometheus.Counter
	escalations prometheus.Counter
	refreshes   prometheus.Counter
	selections  *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	networks    prometheus.Gauge
}

// New registers the counters on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		passes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Number of gather passes of the selection loop",
		}),
		escalations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escalations_total",
			Help:      "Number of times a synchronous rescan was forced",
		}),
		refreshes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Number of refreshes requested from the chooser",
		}),
		selections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Number of networks selected",
		}, []string{"policy", "known"}),
		parseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Number of scan lines that failed to parse",
		}, []string{"tool"}),
		networks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "networks_visible",
			Help:      "Number of distinct networks in the last pass",
		}),
	}
}

func (m *Metrics) Pass() {
	if m != nil {
		m.passes.Inc()
	}
}

func (m *Metrics) Escalation() {
	if m != nil {
		m.escalations.Inc()
	}
}

func (m *Metrics) Refresh() {
	if m != nil {
		m.refreshes.Inc()
	}
}

func (m *Metrics) Selection(policy string, known bool) {
	if m == nil {
		return
	}
	k := "false"
	if known {
		k = "true"
	}
	m.selections.WithLabelValues(policy, k).Inc()
}

func (m *Metrics) ParseErrors(tool string, n int) {
	if m != nil && n > 0 {
		m.parseErrors.WithLabelValues(tool).Add(float64(n))
	}
}

func (m *Metrics) Networks(n int) {
	if m != nil {
		m.networks.Set(float64(n))
	}
}

// WriteFile writes the registry to path atomically.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
