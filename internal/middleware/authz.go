package middleware

import (
	"club-service/internal/authz"
	"club-service/pkg/logger"
	"club-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequireClubAdmin guards routes whose target club is the :clubId path
// parameter. The gate decides; a denial is written here as the terminal
// response for the request, never downgraded to a filtered result.
func RequireClubAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := PrincipalFromContext(c)
		target := authz.Target{ClubID: c.Param("clubId")}

		decision := authz.Check(p, authz.ClubAdminOnly, target)
		prometheus.RecordGateDecision(authz.ClubAdminOnly.String(), decision.MetricReason())

		if !decision.Allowed {
			logger.FromContext(c).Warn("Club admin route denied",
				zap.String("principal", p.Kind.String()),
				zap.String("target_club_id", target.ClubID),
				zap.String("reason", string(decision.Reason)))
			return c.JSON(decision.Status(), echo.Map{
				"message": decision.Message,
				"reason":  string(decision.Reason),
			})
		}

		return next(c)
	}
}

// RequireUniversityAdmin guards university-level management routes.
func RequireUniversityAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := PrincipalFromContext(c)

		decision := authz.Check(p, authz.UniversityAdminOnly, authz.Target{})
		prometheus.RecordGateDecision(authz.UniversityAdminOnly.String(), decision.MetricReason())

		if !decision.Allowed {
			logger.FromContext(c).Warn("University admin route denied",
				zap.String("principal", p.Kind.String()),
				zap.String("reason", string(decision.Reason)))
			return c.JSON(decision.Status(), echo.Map{
				"message": decision.Message,
				"reason":  string(decision.Reason),
			})
		}

		return next(c)
	}
}
