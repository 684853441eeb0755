package recipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	selectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leftover_chef_selections_total",
			Help: "Total number of selector calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	selectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leftover_chef_selection_duration_seconds",
			Help:    "Time spent filtering, scoring and ranking candidates",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"operation"},
	)

	rotationResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leftover_chef_rotation_resets_total",
			Help: "Total number of rotation resets",
		},
	)

	foodSavedPounds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "leftover_chef_food_saved_pounds",
			Help: "Cumulative estimated pounds of food saved by served recipes",
		},
	)
)
