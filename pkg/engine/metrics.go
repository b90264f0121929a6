package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "craft").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for template execution.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithPrometheusRegistry sets the Prometheus registry.
func WithPrometheusRegistry(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = reg
	}
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	craftsTotal       *prometheus.CounterVec
	paintsTotal       prometheus.Counter
	nodesMaterialized prometheus.Counter
	insertionsTotal   *prometheus.CounterVec
	diagnosticsTotal  *prometheus.CounterVec
	templateDuration  *prometheus.HistogramVec
}

// NewMetrics creates and registers engine metrics.
//
// Metrics collected:
//   - craft_engine_crafts_total: crafts by result kind
//   - craft_engine_paints_total: paint calls
//   - craft_engine_nodes_materialized_total: nodes produced by Materialize
//   - craft_engine_insertions_total: RenderInto calls by mode
//   - craft_engine_diagnostics_total: diagnostics by code and category
//   - craft_engine_template_duration_seconds: template execution time by mode
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "craft",
		Subsystem: "engine",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		craftsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "crafts_total",
			Help:        "Total number of craft calls by result kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		paintsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "paints_total",
			Help:        "Total number of paint calls",
			ConstLabels: config.ConstLabels,
		}),

		nodesMaterialized: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_materialized_total",
			Help:        "Total number of nodes produced by materialization",
			ConstLabels: config.ConstLabels,
		}),

		insertionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "insertions_total",
			Help:        "Total number of render-into calls by insertion mode",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		diagnosticsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Total number of diagnostics by code",
			ConstLabels: config.ConstLabels,
		}, []string{"code", "category"}),

		templateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "template_duration_seconds",
			Help:        "Template execution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"mode"}),
	}
}

func (m *Metrics) craft(kind ResultKind) {
	if m == nil {
		return
	}
	m.craftsTotal.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) paint() {
	if m == nil {
		return
	}
	m.paintsTotal.Inc()
}

func (m *Metrics) materialized(n int) {
	if m == nil || n == 0 {
		return
	}
	m.nodesMaterialized.Add(float64(n))
}

func (m *Metrics) insertion(mode string) {
	if m == nil {
		return
	}
	m.insertionsTotal.WithLabelValues(mode).Inc()
}

func (m *Metrics) diagnostic(code, category string) {
	if m == nil {
		return
	}
	m.diagnosticsTotal.WithLabelValues(code, category).Inc()
}

func (m *Metrics) template(mode string, start time.Time) {
	if m == nil {
		return
	}
	m.templateDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
