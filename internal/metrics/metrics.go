// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UUIDsGenerated counts identifiers minted over the HTTP surface.
	UUIDsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idgen_uuids_generated_total",
		Help: "Total number of UUIDv7 identifiers generated.",
	})

	// GenerateFailures counts generation requests that returned an error.
	GenerateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idgen_generate_failures_total",
		Help: "Total number of failed generation requests.",
	})

	// ParseRequests counts extraction/validation requests by outcome.
	ParseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "idgen_parse_requests_total",
		Help: "Total number of parse/validate requests by outcome.",
	}, []string{"outcome"})
)
