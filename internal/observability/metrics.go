// Package observability holds the Prometheus collectors exported on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UsersRegistered counts users created through the registry (fetches of existing users are excluded).
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exercise_tracker_users_registered_total",
		Help: "Number of users created.",
	})

	// ExercisesRecorded counts record attempts: created, duplicate, invalid, not_found or error.
	ExercisesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exercise_tracker_exercises_recorded_total",
		Help: "Number of exercise record attempts by outcome.",
	}, []string{"outcome"})

	// LogQueries counts log queries by cache result: hit, miss, error or disabled.
	LogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exercise_tracker_log_queries_total",
		Help: "Number of exercise log queries by cache result.",
	}, []string{"cache"})

	// IngestMessages counts deliveries handled by the ingest worker.
	IngestMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exercise_tracker_ingest_messages_total",
		Help: "Number of ingest queue deliveries by outcome.",
	}, []string{"outcome"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exercise_tracker_http_request_duration_seconds",
		Help:    "Latency of HTTP requests by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
