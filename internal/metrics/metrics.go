// Package metrics exposes prometheus instrumentation for scoring runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

const namespace = "talentlens"

// Cache lookup outcomes
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsScored *prometheus.CounterVec
	BatchDuration   prometheus.Histogram
	BatchSize       prometheus.Histogram
	CacheLookups    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		DocumentsScored: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_scored_total",
				Help:      "Total number of résumés processed, by extraction status",
			},
			[]string{"status"},
		),

		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Duration of scoring one batch against a job description",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),

		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_size_documents",
				Help:      "Number of résumés submitted per batch",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250},
			},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Extraction cache lookups, by cached signal and result",
			},
			[]string{"signal", "result"},
		),
	}
}

// Registry returns the gatherer holding these collectors
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveDocument counts one processed résumé
func (m *Metrics) ObserveDocument(status types.ExtractionStatus) {
	if m == nil {
		return
	}
	m.DocumentsScored.WithLabelValues(string(status)).Inc()
}

// ObserveBatch records a finished batch
func (m *Metrics) ObserveBatch(size int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
	m.BatchDuration.Observe(elapsed.Seconds())
}

// ObserveCache counts a cache lookup for signal ("skills", "experience")
func (m *Metrics) ObserveCache(signal, result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(signal, result).Inc()
}

// WriteFile dumps the current values in the prometheus text format, for
// node_exporter's textfile collector
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
