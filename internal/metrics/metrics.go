package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReactionsTotal counts reaction requests by intent and outcome
	// (applied, already, noop, invalid, not_found, error).
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadmap_reactions_total",
		Help: "Reaction requests by intent and outcome.",
	}, []string{"intent", "outcome"})

	CommentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "roadmap_comments_created_total",
		Help: "Comments created.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadmap_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roadmap_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})
)
