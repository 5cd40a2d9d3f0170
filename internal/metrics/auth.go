// Package metrics expone contadores Prometheus del flujo de auth.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registrations cuenta registros exitosos.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Successful user registrations.",
	})

	// Logins cuenta logins exitosos.
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Successful password logins.",
	})

	// TokensIssued cuenta tokens firmados por tipo (access|refresh).
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Signed tokens by kind.",
	}, []string{"kind"})

	// Failures cuenta fallos por motivo (invalid_credentials|unauthenticated|forbidden).
	Failures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_failures_total",
		Help: "Authentication and authorization failures by reason.",
	}, []string{"reason"})
)
