// Package metrics holds the prometheus collectors shared by generation and play.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jumble"

var (
	// LexiconLookups counts lexical lookups by result: hit, miss or error.
	LexiconLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "lexicon",
		Name:      "lookups_total",
		Help:      "Lexical lookups partitioned by cache result.",
	}, []string{"result"})

	// LexiconRetries counts transient upstream failures that were retried.
	LexiconRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "lexicon",
		Name:      "retries_total",
		Help:      "Upstream lexical requests retried after a transient failure.",
	})

	// GenerationReplans counts letter-group plans thrown away for lack of candidates.
	GenerationReplans = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "replans_total",
		Help:      "Letter-group plans discarded and reshuffled.",
	})

	// GenerationOutcomes counts solution phrases by outcome: ok, exhausted, unavailable, error.
	GenerationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "generation",
		Name:      "phrases_total",
		Help:      "Solution phrases processed partitioned by outcome.",
	}, []string{"outcome"})

	// RoundsServed counts assembled rounds by difficulty.
	RoundsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "play",
		Name:      "rounds_total",
		Help:      "Rounds assembled partitioned by difficulty.",
	}, []string{"difficulty"})

	// GuessesChecked counts checked solution guesses by correctness.
	GuessesChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "play",
		Name:      "guesses_total",
		Help:      "Solution guesses checked partitioned by correctness.",
	}, []string{"correct"})
)
