// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangout_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hangout_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CompatibilityCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangout_compatibility_calculations_total",
			Help: "Total number of compatibility calculations by scorer",
		},
		[]string{"scorer"},
	)

	CompatibilityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hangout_compatibility_score",
			Help:    "Distribution of weighted compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	MatchCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangout_match_cache_requests_total",
			Help: "Match list cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hangout_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hangout_job_runs_total",
			Help: "Background job runs by job and outcome",
		},
		[]string{"job", "outcome"},
	)
)

// Scorer labels for CompatibilityCalculations
const (
	ScorerWeighted = "weighted"
	ScorerSimple   = "simple"
)

// Cache result labels for MatchCacheRequests
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)
