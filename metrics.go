package arithgen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ============================================================
// Metrics
// ============================================================

var (
	// expressionsTotal counts synthesized trees by outcome.
	// Labels: "accepted", "invalid", "duplicate"
	expressionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithgen_expressions_total",
		Help: "Synthesized expression trees by outcome",
	}, []string{"outcome"})

	generationExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "arithgen_generation_exhausted_total",
		Help: "Generation runs that hit the attempt ceiling",
	})

	generationAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arithgen_generation_attempts",
		Help:    "Synthesis attempts per generation run",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
	})

	// gradedItemsTotal counts graded items by verdict.
	// Labels: "correct", "wrong"
	gradedItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arithgen_graded_items_total",
		Help: "Graded items by verdict",
	}, []string{"verdict"})
)
