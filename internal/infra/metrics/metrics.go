// Package metrics exposes Prometheus instrumentation for address resolution,
// the embedded address migration and the database pool.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes.
const (
	OutcomeCreated = "created"
	OutcomeReused  = "reused"
	OutcomeRetried = "retried"
	OutcomeFailed  = "failed"
)

// Migration outcomes.
const (
	OutcomeMigrated = "migrated"
	OutcomeSkipped  = "skipped"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	AddressResolutions        *prometheus.CounterVec
	AddressResolutionDuration prometheus.Histogram
	MigrationProperties       *prometheus.CounterVec
	MigrationBatchDuration    prometheus.Histogram
	MigrationRemaining        prometheus.Gauge
	DBPoolWaits               prometheus.Counter
}

// New registers all collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AddressResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "homiio_address_resolutions_total",
			Help: "Find-or-create address resolutions by outcome",
		}, []string{"outcome"}),
		AddressResolutionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "homiio_address_resolution_duration_seconds",
			Help:    "Duration of find-or-create address resolutions",
			Buckets: durationBuckets,
		}),
		MigrationProperties: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "homiio_address_migration_properties_total",
			Help: "Properties processed by the address migration by outcome",
		}, []string{"outcome"}),
		MigrationBatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "homiio_address_migration_batch_duration_seconds",
			Help:    "Duration of one address migration batch",
			Buckets: durationBuckets,
		}),
		MigrationRemaining: factory.NewGauge(prometheus.GaugeOpts{
			Name: "homiio_address_migration_remaining",
			Help: "Properties still holding an embedded address at the last status check",
		}),
		DBPoolWaits: factory.NewCounter(prometheus.CounterOpts{
			Name: "homiio_db_pool_waits_total",
			Help: "Connections the database pool had to wait for",
		}),
	}
}

// ObserveResolution records one find-or-create outcome and its duration.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveResolution(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.AddressResolutions.WithLabelValues(outcome).Inc()
	m.AddressResolutionDuration.Observe(time.Since(start).Seconds())
}

// IncrementResolutionRetry records a lost create race that fell back to a read.
func (m *Metrics) IncrementResolutionRetry() {
	if m == nil {
		return
	}
	m.AddressResolutions.WithLabelValues(OutcomeRetried).Inc()
}

// AddMigrationProperties records n properties with the given migration outcome.
func (m *Metrics) AddMigrationProperties(outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MigrationProperties.WithLabelValues(outcome).Add(float64(n))
}

// ObserveMigrationBatch records the duration of one batch.
func (m *Metrics) ObserveMigrationBatch(start time.Time) {
	if m == nil {
		return
	}
	m.MigrationBatchDuration.Observe(time.Since(start).Seconds())
}

// SetMigrationRemaining records the number of unmigrated properties.
func (m *Metrics) SetMigrationRemaining(n int64) {
	if m == nil {
		return
	}
	m.MigrationRemaining.Set(float64(n))
}

// AddDBPoolWaits records connection waits observed by the pool monitor.
func (m *Metrics) AddDBPoolWaits(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.DBPoolWaits.Add(float64(n))
}
