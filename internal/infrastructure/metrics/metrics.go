package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "buildgen"

// Metrics build generator Prometheus ko'rsatkichlari
type Metrics struct {
	BuildsTotal         *prometheus.CounterVec
	AllocationFailures  *prometheus.CounterVec
	AllocationDuration  *prometheus.HistogramVec
	ValidationsTotal    prometheus.Counter
	ValidationIssues    prometheus.Counter
	BottlenecksTotal    *prometheus.CounterVec
	CatalogFieldDefault *prometheus.CounterVec
	CatalogSkippedRows  prometheus.Counter
	CatalogComponents   *prometheus.GaugeVec
	BotRequestsTotal    *prometheus.CounterVec
}

// New registers every collector on reg. Use a fresh registry per test.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BuildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Build requests by allocator and outcome",
		}, []string{"allocator", "outcome"}),
		AllocationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocation_failures_total",
			Help:      "Allocation failures by category and reason code",
		}, []string{"category", "reason"}),
		AllocationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "allocation_duration_seconds",
			Help:      "Time spent producing a build",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"allocator"}),
		ValidationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Manual build validations",
		}),
		ValidationIssues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_issues_total",
			Help:      "Compatibility issues found by manual validation",
		}),
		BottlenecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bottlenecks_total",
			Help:      "Bottlenecks reported by manual validation",
		}, []string{"type"}),
		CatalogFieldDefault: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_field_defaults_total",
			Help:      "Catalog values that could not be parsed and defaulted to zero",
		}, []string{"field"}),
		CatalogSkippedRows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_skipped_rows_total",
			Help:      "Catalog rows dropped during normalization",
		}),
		CatalogComponents: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_components",
			Help:      "Components in the active catalog snapshot",
		}, []string{"category"}),
		BotRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bot_requests_total",
			Help:      "Telegram commands handled",
		}, []string{"command", "outcome"}),
	}
}

// ObserveBuild records one allocation attempt.
func (m *Metrics) ObserveBuild(allocator string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.BuildsTotal.WithLabelValues(allocator, outcome).Inc()
	m.AllocationDuration.WithLabelValues(allocator).Observe(elapsed.Seconds())
}

// ObserveAllocationFailure kategoriya va sabab bo'yicha
func (m *Metrics) ObserveAllocationFailure(category, reason string) {
	if m == nil {
		return
	}
	m.AllocationFailures.WithLabelValues(category, reason).Inc()
}

// ObserveValidation records a manual validation result.
func (m *Metrics) ObserveValidation(issues int, bottleneckTypes []string) {
	if m == nil {
		return
	}
	m.ValidationsTotal.Inc()
	m.ValidationIssues.Add(float64(issues))
	for _, t := range bottleneckTypes {
		m.BottlenecksTotal.WithLabelValues(t).Inc()
	}
}

// ObserveCatalog parse diagnostikasi va snapshot hajmi
func (m *Metrics) ObserveCatalog(defaultsByField map[string]int, skipped int, perCategory map[string]int) {
	if m == nil {
		return
	}
	for field, n := range defaultsByField {
		m.CatalogFieldDefault.WithLabelValues(field).Add(float64(n))
	}
	m.CatalogSkippedRows.Add(float64(skipped))
	m.CatalogComponents.Reset()
	for category, n := range perCategory {
		m.CatalogComponents.WithLabelValues(category).Set(float64(n))
	}
}

// ObserveBotRequest bot buyrug'i natijasi
func (m *Metrics) ObserveBotRequest(command string, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.BotRequestsTotal.WithLabelValues(command, outcome).Inc()
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
