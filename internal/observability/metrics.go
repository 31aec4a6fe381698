package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the console.
type Metrics struct {
	RefreshCycles   *prometheus.CounterVec // labels: trigger={scheduled,manual}, outcome={live,fallback}
	RefreshDiscards prometheus.Counter
	SnapshotReports prometheus.Gauge
	ReportsDropped  prometheus.Counter

	// Remote API metrics.
	APIRequestDuration *prometheus.HistogramVec // labels: endpoint
	APIErrors          *prometheus.CounterVec   // labels: endpoint, kind={http,transport}

	// Mutation flows.
	Submissions       *prometheus.CounterVec // labels: outcome={accepted,rejected,failed}
	Verifications     prometheus.Counter
	AlertsIssued      prometheus.Counter
	ValidationRejects *prometheus.CounterVec // labels: rule

	// Dashboard panels.
	PanelFailures *prometheus.CounterVec // labels: panel

	// WebSocket fanout.
	SubscriberCount prometheus.Gauge
}

// NewMetrics creates and registers all console metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RefreshCycles,
		m.RefreshDiscards,
		m.SnapshotReports,
		m.ReportsDropped,
		m.APIRequestDuration,
		m.APIErrors,
		m.Submissions,
		m.Verifications,
		m.AlertsIssued,
		m.ValidationRejects,
		m.PanelFailures,
		m.SubscriberCount,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "refresh_cycles_total",
			Help:      "Completed refresh cycles by trigger and data source.",
		}, []string{"trigger", "outcome"}),
		RefreshDiscards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "refresh_discards_total",
			Help:      "Refresh responses discarded by the stale-sequence guard.",
		}),
		SnapshotReports: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard_console",
			Name:      "snapshot_reports",
			Help:      "Number of hazard reports in the current snapshot.",
		}),
		ReportsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "reports_dropped_total",
			Help:      "Raw records dropped during mapping for implausible coordinates.",
		}),
		APIRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hazard_console",
			Name:      "api_request_duration_seconds",
			Help:      "Remote hazard API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		APIErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "api_errors_total",
			Help:      "Remote hazard API failures by endpoint and error kind.",
		}, []string{"endpoint", "kind"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "report_submissions_total",
			Help:      "Citizen report submissions by outcome.",
		}, []string{"outcome"}),
		Verifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "report_verifications_total",
			Help:      "Verification decisions posted to the remote API.",
		}),
		AlertsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "authority_alerts_total",
			Help:      "Authority alerts issued through the console.",
		}),
		ValidationRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "validation_rejects_total",
			Help:      "Client-side submission rejections by validation rule.",
		}, []string{"rule"}),
		PanelFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hazard_console",
			Name:      "panel_failures_total",
			Help:      "Dashboard panel refresh failures by panel name.",
		}, []string{"panel"}),
		SubscriberCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hazard_console",
			Name:      "ws_subscribers",
			Help:      "Currently connected WebSocket subscribers.",
		}),
	}
}
