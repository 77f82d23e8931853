// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuthOutcomes counts authentication attempts per strategy and outcome reason.
	AuthOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinema",
			Name:      "auth_outcomes_total",
			Help:      "Authentication attempts by strategy and outcome",
		},
		[]string{"strategy", "outcome"},
	)

	// AuthzDecisions counts ownership checks on protected user resources.
	AuthzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinema",
			Name:      "authz_decisions_total",
			Help:      "Authorization guard decisions",
		},
		[]string{"decision"},
	)

	// HTTPRequests counts served requests by method, route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinema",
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		},
		[]string{"method", "route", "code"},
	)
)

// Strategy labels.
const (
	StrategyLocal  = "local"
	StrategyBearer = "bearer"
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
