package handler

import (
	"club-service/internal/middleware"
	"club-service/prometheus"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires every endpoint onto the Echo instance. Route classes:
// public reads carry no guard, university management routes go through the
// university admin guard, club-scoped reads keyed by :clubId go through the
// club admin guard, and handlers whose target comes from a request body or a
// stored row run the gate themselves.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", Hello)
	e.GET("/health", HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())

	api := e.Group("/api")

	// Public club and event browsing
	api.GET("/clubs", ListClubs)
	api.GET("/clubs/:id", GetClub)
	api.GET("/events", ListEvents)
	api.GET("/events/:id", GetEvent)

	// University-level club management
	api.POST("/clubs", CreateClub, middleware.RequireUniversityAdmin)
	api.PATCH("/clubs/:id", UpdateClub, middleware.RequireUniversityAdmin)

	// Club admin event management; the gate runs inside the handlers because
	// the target club comes from the body (create) or the row (update)
	api.POST("/events", CreateEvent)
	api.PATCH("/events/:id", UpdateEvent)

	// Student actions
	api.POST("/events/:id/register", RegisterForEvent)
	api.POST("/clubs/:id/join", JoinClub)

	// Admin authentication
	auth := api.Group("/auth")
	auth.POST("/login", Login)
	auth.POST("/club-login", ClubLogin)
	auth.POST("/logout", Logout)
	auth.GET("/me", Me)

	// Student accounts
	student := api.Group("/student")
	student.POST("/signup", Signup)
	student.POST("/login", StudentLogin)
	student.GET("/me", StudentMe)

	// Club admin surface
	admin := api.Group("/admin")
	admin.GET("/club-memberships/:clubId", ListClubMemberships, middleware.RequireClubAdmin)
	admin.PATCH("/club-memberships/:id", UpdateMembershipStatus)
	admin.POST("/student-points", AwardStudentPoints)
	admin.GET("/student-points/:clubId", ListStudentPoints, middleware.RequireClubAdmin)
	admin.GET("/event-registrations/:clubId", ListEventRegistrations, middleware.RequireClubAdmin)
	admin.POST("/achievements", CreateAchievement)
	admin.GET("/achievements/:clubId", ListAchievements, middleware.RequireClubAdmin)
}
