// Package metrics defines Prometheus metrics for asc-iap.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "asciap"

// HTTP server metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last /healthz probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last /readyz probe succeeded (1) or failed (0).",
	})
)

// App Store Connect API metrics.
var (
	ASCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asc_api_requests_total",
		Help:      "Total App Store Connect API requests by method and outcome.",
	}, []string{"method", "status"})

	ASCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "asc_api_request_duration_seconds",
		Help:      "Duration of App Store Connect API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	ASCTokenRenewalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asc_token_renewals_total",
		Help:      "Total number of bearer tokens signed.",
	})

	ASCRateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "asc_rate_limit_hits_total",
		Help:      "Total number of times the hourly request budget was exhausted.",
	})

	ASCHourlyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "asc_hourly_usage",
		Help:      "Requests issued in the current rolling one-hour window.",
	})

	ScreenshotUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screenshot_upload_bytes_total",
		Help:      "Total bytes uploaded for review screenshots.",
	})
)

// Batch metrics.
var (
	BatchItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_items_total",
		Help:      "Total batch items processed by result (succeeded, failed).",
	}, []string{"result"})

	BatchSubstepFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_substep_failures_total",
		Help:      "Total best-effort sub-step failures that were discarded, by step.",
	}, []string{"step"})

	BatchRunsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "batch_runs_active",
		Help:      "Number of batch runs currently in progress.",
	})

	BatchRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_run_duration_seconds",
		Help:      "Duration of complete batch runs in seconds.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// Notification metrics.
var NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "notification_failures_total",
	Help:      "Total batch run notifications that failed to send.",
})
