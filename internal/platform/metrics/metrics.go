// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package metrics exposes Prometheus counters for the security-relevant
// events in the mutation workflow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MutationsTotal counts committed mutations by terminal outcome
	// (success, noop, failed).
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apotek",
			Name:      "mutations_total",
			Help:      "Mutation workflow terminal outcomes.",
		},
		[]string{"outcome"},
	)

	// AuthzDenialsTotal counts authorization gate denials.
	AuthzDenialsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "apotek",
			Name:      "authz_denials_total",
			Help:      "Requests rejected by the role gate.",
		},
	)

	// CsrfRejectionsTotal counts hard CSRF validation failures.
	CsrfRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "apotek",
			Name:      "csrf_rejections_total",
			Help:      "State-changing requests rejected by the CSRF guard.",
		},
	)
)

func init() {
	prometheus.MustRegister(MutationsTotal, AuthzDenialsTotal, CsrfRejectionsTotal)
}

// Handler returns the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
