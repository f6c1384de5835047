package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// AuthFailures counts rejected authentication attempts by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})

	// AccountsSoftDeleted counts soft-delete operations by surface.
	AccountsSoftDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_accounts_soft_deleted_total",
		Help: "Total number of account soft deletions by originating surface",
	}, []string{"surface"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
