package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CyclesTotal counts completed poll cycles.
	CyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_cycles_total",
			Help: "Total number of poll cycles run",
		},
	)

	// CyclesFailed counts cycles where the report check failed.
	CyclesFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_cycles_failed_total",
			Help: "Total number of poll cycles whose report check failed",
		},
	)

	// CycleDuration tracks how long one fetch-evaluate-notify cycle takes.
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifier_cycle_duration_seconds",
			Help:    "Poll cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// AlertsSent counts delivered alerts per originating check.
	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_alerts_sent_total",
			Help: "Total number of alerts delivered",
		},
		[]string{"check"},
	)

	// NotifyFailures counts alert deliveries that failed.
	NotifyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_notify_failures_total",
			Help: "Total number of failed alert deliveries",
		},
	)

	// LastMissedPct is the last alerted missed-request percentage.
	LastMissedPct = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_last_missed_pct",
			Help: "Last alerted missed-request percentage",
		},
	)

	// LastConfirmationWeight is the last observed confirmation weight.
	LastConfirmationWeight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_last_confirmation_weight",
			Help: "Last observed confirmation weight of the watched participant",
		},
	)

	// TrackedChecks is the number of check ids in the status table.
	TrackedChecks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_tracked_checks",
			Help: "Number of check ids with recorded status",
		},
	)
)
