package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Server Metrics

	// APIRequestsTotal counts handled requests by route template
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// APIRequestDuration request latency by route template
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Complaint workflow metrics

	// ComplaintsCreated complaints accepted with a generated number
	ComplaintsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "complaints_created_total",
			Help: "Total number of complaints created",
		},
	)

	// ComplaintNumberRetries duplicate complaint numbers hit during creation
	ComplaintNumberRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "complaint_number_retries_total",
			Help: "Total number of complaint number collisions that triggered a retry",
		},
	)

	// StatusTransitions applied status changes
	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaint_status_transitions_total",
			Help: "Total number of complaint status changes",
		},
		[]string{"from", "to"},
	)

	// Assignments by mode (manual, auto)
	Assignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaint_assignments_total",
			Help: "Total number of complaint assignments",
		},
		[]string{"mode"},
	)

	// AutoAssignFailures auto-assign attempts that found no eligible staff
	AutoAssignFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "complaint_auto_assign_failures_total",
			Help: "Total number of auto-assign attempts without an eligible staff member",
		},
		[]string{"department", "reason"},
	)

	// Notification metrics

	// NotificationsSent delivery outcomes per channel
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of customer notifications by channel and outcome",
		},
		[]string{"channel", "type", "status"},
	)

	// Analytics metrics

	// AnalyticsComputeDuration time spent computing a report
	AnalyticsComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Analytics report computation time in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DigestRuns scheduled snapshot runs by outcome
	DigestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_digest_runs_total",
			Help: "Total number of scheduled analytics snapshot runs",
		},
		[]string{"status"},
	)
)
