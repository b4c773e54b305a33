// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_received_total",
			Help: "Total number of submissions received by the intake pipeline",
		},
		[]string{"kind"},
	)

	SubmissionsAccepted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_accepted_total",
			Help: "Total number of submissions accepted and persisted (or soft-accepted)",
		},
		[]string{"kind"},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_rejected_total",
			Help: "Total number of submissions rejected, labelled by reason",
		},
		[]string{"kind", "reason"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "intake_submission_duration_seconds",
			Help: "Duration of intake pipeline processing in seconds",
		},
		[]string{"kind"},
	)

	StoreCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_store_calls_total",
			Help: "Document store calls, labelled by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_sent_total",
			Help: "Dispatch notifications attempted, labelled by channel and status",
		},
		[]string{"channel", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, labelled by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request handling duration in seconds",
		},
		[]string{"route", "method"},
	)
)
