// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_registrations_total",
			Help: "Total number of registered accounts",
		},
		[]string{"role"},
	)

	CourseEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_course_events_total",
			Help: "Total number of course publish/unpublish/enroll events",
		},
		[]string{"event", "result"},
	)

	ProtectionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_protection_events_total",
			Help: "Total number of suppressed or obscuring protection events",
		},
		[]string{"kind"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
