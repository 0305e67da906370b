package relationship

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relationship_decisions_total",
			Help: "Total number of like/dislike decisions recorded",
		},
		[]string{"outcome"},
	)

	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "relationship_matches_total",
			Help: "Total number of mutual matches formed",
		},
	)
)
