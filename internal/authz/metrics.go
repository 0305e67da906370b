package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	denialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_denials_total",
			Help: "Total number of denied access attempts",
		},
		[]string{"kind", "reason"},
	)

	sanitizedFieldsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "authz_sanitized_fields_total",
			Help: "Total number of forbidden fields stripped from request bodies",
		},
	)
)
