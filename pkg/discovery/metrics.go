package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kubev2v/migration-discovery/internal/models"
)

const namespace = "discovery"

// Metrics records discovery progress as Prometheus metrics.
type Metrics struct {
	UnitsInFlight    *prometheus.GaugeVec     // labels: provider
	UnitsTotal       *prometheus.CounterVec   // labels: provider, status
	UnitDuration     *prometheus.HistogramVec // labels: provider
	ResourcesTotal   *prometheus.CounterVec   // labels: provider
	DroppedTotal     *prometheus.CounterVec   // labels: provider
	RunsTotal        prometheus.Counter
	LastRunTimestamp prometheus.Gauge
	LastRunResources prometheus.Gauge
}

// NewMetrics registers the discovery metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		UnitsInFlight: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units_in_flight",
			Help:      "Number of scan units currently running",
		}, []string{"provider"}),
		UnitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_total",
			Help:      "Total number of finished scan units by status",
		}, []string{"provider", "status"}),
		UnitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unit_duration_seconds",
			Help:      "Duration of scan units",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"provider"}),
		ResourcesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resources_total",
			Help:      "Total number of normalized resources",
		}, []string{"provider"}),
		DroppedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_records_total",
			Help:      "Total number of native records dropped by normalization",
		}, []string{"provider"}),
		RunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of discovery runs",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "End time of the last discovery run",
		}),
		LastRunResources: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_resources",
			Help:      "Number of resources in the last catalog",
		}),
	}
}

func (m *Metrics) UnitStarted(unit models.ScanUnit) {
	m.UnitsInFlight.WithLabelValues(string(unit.Provider)).Inc()
}

func (m *Metrics) UnitFinished(result models.ScanResult) {
	provider := string(result.Unit.Provider)

	// units abandoned before starting were never counted in flight
	if !result.StartedAt.IsZero() {
		m.UnitsInFlight.WithLabelValues(provider).Dec()
	}

	m.UnitsTotal.WithLabelValues(provider, string(models.NewUnitSummary(result).Status)).Inc()
	m.UnitDuration.WithLabelValues(provider).Observe(result.Duration.Seconds())
	m.ResourcesTotal.WithLabelValues(provider).Add(float64(len(result.Resources)))
	m.DroppedTotal.WithLabelValues(provider).Add(float64(result.Dropped))
}

func (m *Metrics) RunFinished(catalog *models.Catalog) {
	m.RunsTotal.Inc()
	m.LastRunTimestamp.Set(float64(catalog.ScanEndTime.Unix()))
	m.LastRunResources.Set(float64(catalog.ResourceCount()))
}
