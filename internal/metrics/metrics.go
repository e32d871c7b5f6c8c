// Package metrics provides counters, Prometheus collectors, and HTTP
// handlers for exporting ReportHub runtime metrics.
package metrics

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Notification outcome labels.
const (
	StatusSent             = "sent"
	StatusInvalidRecipient = "invalid_recipient"
	StatusFailed           = "failed"
)

// Lookup kinds for unsupported identifiers.
const (
	LookupFormat  = "format"
	LookupChannel = "channel"
)

// 1. Internal State (Source of Truth)
var (
	reportsGenerated     int64
	notificationsSent    int64
	notificationsInvalid int64
	notificationsFailed  int64
	unsupportedLookups   int64
	decorationsRendered  int64
	lastRun              int64
)

const counterInc int64 = 1

// 2. Prometheus Collectors
var (
	promReports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporthub_reports_generated_total",
			Help: "Total reports generated",
		},
		[]string{"format"},
	)
	promNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporthub_notifications_total",
			Help: "Total notification send attempts by channel and outcome",
		},
		[]string{"channel", "status"},
	)
	promUnsupported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporthub_unsupported_lookups_total",
			Help: "Total lookups of unregistered formats or channels",
		},
		[]string{"kind"},
	)
	promDecorations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporthub_decorations_rendered_total",
			Help: "Total component renders by decoration layer",
		},
		[]string{"layer"},
	)
	promRunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "reporthub_run_duration_seconds",
			Help: "Duration of demonstration runs",
			Buckets: []float64{
				0.001,
				0.01,
				0.1,
				0.5,
				1,
				5,
			},
		},
	)
	promLastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reporthub_last_run_timestamp_seconds",
			Help: "Unix timestamp of last run",
		},
	)
)

func init() {
	prometheus.MustRegister(
		promReports,
		promNotifications,
		promUnsupported,
		promDecorations,
		promRunDuration,
		promLastRun,
	)
}

// 3. Public API (Updates both Atomic and Prometheus)

// IncReportGenerated increments the number of generated reports for a format.
func IncReportGenerated(format string) {
	atomic.AddInt64(&reportsGenerated, counterInc)
	promReports.WithLabelValues(format).Inc()
}

// IncNotification records the outcome of a single notification send.
func IncNotification(channel, status string) {
	switch status {
	case StatusSent:
		atomic.AddInt64(&notificationsSent, counterInc)
	case StatusInvalidRecipient:
		atomic.AddInt64(&notificationsInvalid, counterInc)
	default:
		atomic.AddInt64(&notificationsFailed, counterInc)
	}
	promNotifications.WithLabelValues(channel, status).Inc()
}

// IncUnsupported increments the counter for lookups of unregistered
// identifiers. kind is LookupFormat or LookupChannel.
func IncUnsupported(kind string) {
	atomic.AddInt64(&unsupportedLookups, counterInc)
	promUnsupported.WithLabelValues(kind).Inc()
}

// IncDecorationRendered increments the render counter for a decoration layer.
func IncDecorationRendered(layer string) {
	atomic.AddInt64(&decorationsRendered, counterInc)
	promDecorations.WithLabelValues(layer).Inc()
}

// ObserveRunDuration records the duration (in seconds) of a demonstration run.
func ObserveRunDuration(seconds float64) {
	promRunDuration.Observe(seconds)
}

// SetLastRun stores the provided time as the last run timestamp and
// updates the corresponding Prometheus gauge.
func SetLastRun(t time.Time) {
	atomic.StoreInt64(&lastRun, t.Unix())
	promLastRun.Set(float64(t.Unix()))
}

// 4. JSON Snapshot Struct

// StatsSnapshot is a snapshot of metrics for JSON encoding.
type StatsSnapshot struct {
	ReportsGenerated     int64  `json:"reports_generated"`
	NotificationsSent    int64  `json:"notifications_sent"`
	NotificationsInvalid int64  `json:"notifications_invalid"`
	NotificationsFailed  int64  `json:"notifications_failed"`
	UnsupportedLookups   int64  `json:"unsupported_lookups"`
	DecorationsRendered  int64  `json:"decorations_rendered"`
	LastRun              int64  `json:"last_run_timestamp"`
	LastRunHuman         string `json:"last_run_human"`
}

// GetSnapshot returns a StatsSnapshot with the current values of all
// internal counters and timestamps.
func GetSnapshot() StatsSnapshot {
	ts := atomic.LoadInt64(&lastRun)
	return StatsSnapshot{
		ReportsGenerated:     atomic.LoadInt64(&reportsGenerated),
		NotificationsSent:    atomic.LoadInt64(&notificationsSent),
		NotificationsInvalid: atomic.LoadInt64(&notificationsInvalid),
		NotificationsFailed:  atomic.LoadInt64(&notificationsFailed),
		UnsupportedLookups:   atomic.LoadInt64(&unsupportedLookups),
		DecorationsRendered:  atomic.LoadInt64(&decorationsRendered),
		LastRun:              ts,
		LastRunHuman:         time.Unix(ts, 0).Format(time.RFC3339),
	}
}

// 5. Handlers

// PromHandler returns an HTTP handler that exposes Prometheus metrics.
func PromHandler() http.Handler { return promhttp.Handler() }

// JSONHandler returns an HTTP handler that serves the current metrics as
// a JSON-encoded StatsSnapshot.
func JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(GetSnapshot())
	})
}
