package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Sweep metrics
	SweepRuns          prometheus.Counter
	SweepStageFailures *prometheus.CounterVec
	SweepDuration      prometheus.Histogram

	// Lifecycle metrics
	OrdersStarted  prometheus.Counter
	OrdersFinished prometheus.Counter
	AlertsCreated  *prometheus.CounterVec

	// Notification metrics
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
}

// NewMetrics creates and registers all application metrics with the default
// registry. Use once per process.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Total number of completed lifecycle sweeps",
		}),
		SweepStageFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_stage_failures_total",
			Help:      "Total number of failed sweep stages",
		}, []string{"stage"}),
		SweepDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time spent running a full lifecycle sweep",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		OrdersStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_orders_started_total",
			Help:      "Total number of orders moved to in_progress by the sweep",
		}),
		OrdersFinished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_orders_finished_total",
			Help:      "Total number of orders moved to awaiting_confirmation by the sweep",
		}),
		AlertsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Total number of alerts created",
		}, []string{"category"}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of expiration notifications dispatched",
		}),
		NotificationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Total number of failed notification dispatch attempts",
		}),
	}
}

// New creates unregistered metrics, useful in tests where the default
// registry must stay clean.
func New(namespace string) *Metrics {
	return &Metrics{
		SweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Total number of completed lifecycle sweeps",
		}),
		SweepStageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_stage_failures_total",
			Help:      "Total number of failed sweep stages",
		}, []string{"stage"}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time spent running a full lifecycle sweep",
		}),
		OrdersStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_orders_started_total",
			Help:      "Total number of orders moved to in_progress by the sweep",
		}),
		OrdersFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "maintenance_orders_finished_total",
			Help:      "Total number of orders moved to awaiting_confirmation by the sweep",
		}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_created_total",
			Help:      "Total number of alerts created",
		}, []string{"category"}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of expiration notifications dispatched",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_failed_total",
			Help:      "Total number of failed notification dispatch attempts",
		}),
	}
}
