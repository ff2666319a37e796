package handler

import (
	"club-service/internal/authz"
	"club-service/internal/middleware"
	"club-service/internal/session"
	"club-service/prometheus"
	"time"

	"github.com/labstack/echo/v4"
)

var (
	sessions   session.Store
	sessionTTL time.Duration
)

// Init wires the session store and session lifetime used by the handlers.
// The store is injected so tests can supply their own instance.
func Init(store session.Store, ttl time.Duration) {
	sessions = store
	sessionTTL = ttl
}

// authorize runs the gate for the request's principal and returns the denial,
// if any. Handlers call this for routes whose target comes from the request
// body or from an already-loaded row.
func authorize(c echo.Context, route authz.RouteClass, target authz.Target) (authz.Principal, *authz.Decision) {
	p := middleware.PrincipalFromContext(c)
	decision := authz.Check(p, route, target)
	prometheus.RecordGateDecision(route.String(), decision.MetricReason())
	if decision.Allowed {
		return p, nil
	}
	return p, &decision
}

// denyJSON writes the terminal response for a gate denial.
func denyJSON(c echo.Context, decision authz.Decision) error {
	return c.JSON(decision.Status(), echo.Map{
		"message": decision.Message,
		"reason":  string(decision.Reason),
	})
}
