package cli

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/careatlas/pkg/observability"
)

// promMetrics implements the observability hook interfaces on Prometheus
// collectors. Registered by the serve command only; one-shot CLI runs keep
// the no-op defaults.
type promMetrics struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	rowsLoaded    prometheus.Gauge
	documentBytes prometheus.Gauge
	cacheOps      *prometheus.CounterVec
}

// newPromMetrics creates and registers the collectors on reg.
func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	m := &promMetrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: appName,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "pipeline_stage_errors_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		rowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      "snapshot_rows",
			Help:      "Rows in the most recently loaded snapshot.",
		}),
		documentBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: appName,
			Name:      "document_bytes",
			Help:      "Size of the most recently emitted document.",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName,
			Name:      "cache_operations_total",
			Help:      "Cache operations by key type and outcome.",
		}, []string{"key_type", "outcome"}),
	}
	reg.MustRegister(m.stageDuration, m.stageErrors, m.rowsLoaded, m.documentBytes, m.cacheOps)
	return m
}

// register installs the collectors as the process-wide hooks.
func (m *promMetrics) register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
}

func (m *promMetrics) observe(stage string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(stage).Inc()
	}
}

// PipelineHooks implementation.

func (m *promMetrics) OnLoadStart(context.Context, string, string) {}

func (m *promMetrics) OnLoadComplete(_ context.Context, _, _ string, rowCount int, d time.Duration, err error) {
	m.observe("load", d, err)
	if err == nil {
		m.rowsLoaded.Set(float64(rowCount))
	}
}

func (m *promMetrics) OnCompileStart(context.Context, int) {}

func (m *promMetrics) OnCompileComplete(_ context.Context, d time.Duration, err error) {
	m.observe("compile", d, err)
}

func (m *promMetrics) OnEmitStart(context.Context) {}

func (m *promMetrics) OnEmitComplete(_ context.Context, size int, d time.Duration, err error) {
	m.observe("emit", d, err)
	if err == nil {
		m.documentBytes.Set(float64(size))
	}
}

// CacheHooks implementation.

func (m *promMetrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *promMetrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *promMetrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
}
