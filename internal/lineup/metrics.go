package lineup

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xigen_batches_total",
			Help: "Total number of generation batches by outcome",
		},
		[]string{"outcome"},
	)

	lineupsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xigen_lineups_generated_total",
			Help: "Total number of accepted lineups",
		},
	)

	attemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xigen_attempts_total",
			Help: "Total number of lineup construction attempts",
		},
	)

	attemptsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xigen_attempts_rejected_total",
			Help: "Lineup attempts discarded by the generation loop",
		},
		[]string{"stage"},
	)

	batchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xigen_batch_duration_seconds",
			Help:    "Time to generate a full batch",
			Buckets: prometheus.DefBuckets,
		},
	)

	attemptsPerLineup = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xigen_attempts_per_lineup",
			Help:    "Construction attempts needed per accepted lineup",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11),
		},
	)
)
