// Package metrics exposes Prometheus instrumentation for the ranking
// pipeline. Collectors are registered on the default registry and served by
// the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RankingRuns counts ranking pipeline executions, cancelled or not.
	RankingRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recruiter",
		Name:      "ranking_runs_total",
		Help:      "Number of ranking pipeline runs started.",
	})

	// RankingCancellations counts runs that stopped at the cancellation
	// checkpoint between discovery and scoring.
	RankingCancellations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "recruiter",
		Name:      "ranking_cancellations_total",
		Help:      "Number of ranking runs cancelled before scoring.",
	})

	// CandidatesRanked counts per-candidate outcomes: scored, failed (error
	// row persisted) or skipped (double fault, no row persisted).
	CandidatesRanked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruiter",
		Name:      "candidates_ranked_total",
		Help:      "Number of candidates processed by the scorer, by outcome.",
	}, []string{"outcome"})
)
