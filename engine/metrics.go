package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes, used as the "outcome" label.
const (
	OutcomeSolved       = "solved"
	OutcomeUnreachable  = "unreachable"
	OutcomeMalformed    = "malformed"
	OutcomeInconsistent = "inconsistent"
	OutcomeError        = "error"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mazepath",
		Name:      "solves_total",
		Help:      "Total maze queries by outcome.",
	}, []string{"outcome"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazepath",
		Name:      "solve_duration_seconds",
		Help:      "Wall time of one maze query, parse through extraction.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
	})

	statesFinalized = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazepath",
		Name:      "states_finalized",
		Help:      "Search states finalized per solve.",
		Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
	})

	stalePops = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mazepath",
		Name:      "stale_pops_total",
		Help:      "Heap entries discarded as stale.",
	})

	optimalTiles = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mazepath",
		Name:      "optimal_tiles",
		Help:      "Cells on at least one optimal path, per extraction.",
		Buckets:   prometheus.ExponentialBuckets(2, 4, 10),
	})
)
