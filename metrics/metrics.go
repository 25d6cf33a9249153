// Package metrics holds the prometheus collectors the server exports on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	labelMethod = "method"
	labelRoute  = "route"
	labelStatus = "status"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "racetracker_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{labelMethod, labelRoute, labelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "racetracker_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{labelMethod, labelRoute},
	)
)

// League Metrics
var (
	LeagueRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "racetracker_league_recomputes_total",
			Help: "League table recomputes by outcome.",
		},
		[]string{"outcome"},
	)

	LeagueRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "racetracker_league_recompute_duration_seconds",
			Help:    "Time taken to rescore every selection and save the table.",
			Buckets: prometheus.DefBuckets,
		},
	)

	OddsFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "racetracker_odds_fallbacks_total",
			Help: "Selections scored at the default price because the stored price was missing or malformed.",
		},
	)
)
