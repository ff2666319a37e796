package handler

import (
	"club-service/internal/authz"
	"club-service/internal/middleware"
	"club-service/internal/model"
	"club-service/pkg/database"
	"club-service/pkg/logger"
	"club-service/prometheus"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the university admin login route. An account bound to a club
// is rejected here with a distinct error even when its password is correct.
func Login(c echo.Context) error {
	log := logger.FromContext(c)

	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	admin, ok := verifyAdminCredentials(req.Username, req.Password)
	if !ok {
		prometheus.RecordLogin("university", "invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid username or password"})
	}

	// Right password, wrong account class for this route.
	if !admin.IsUniversityAdmin() {
		log.Warn("Club admin attempted university login", zap.String("username", admin.Username))
		prometheus.RecordLogin("university", "wrong_login_type")
		return c.JSON(http.StatusForbidden, echo.Map{
			"message": "Club admins must use the club admin login",
			"reason":  string(authz.ReasonClubAdminMustUseClubLogin),
		})
	}

	principal := authz.Principal{
		Kind:     authz.UniversityAdmin,
		ID:       admin.ID,
		Username: admin.Username,
	}

	if err := establishSession(c, principal); err != nil {
		log.Error("Failed to create session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create session"})
	}

	prometheus.RecordLogin("university", "success")
	log.Info("University admin logged in", zap.String("admin_id", admin.ID))

	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

// ClubLogin handles the club admin login route. A university account (no
// club binding) is rejected here with a distinct error.
func ClubLogin(c echo.Context) error {
	log := logger.FromContext(c)

	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse club login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username and password are required"})
	}

	admin, ok := verifyAdminCredentials(req.Username, req.Password)
	if !ok {
		prometheus.RecordLogin("club", "invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid username or password"})
	}

	if admin.IsUniversityAdmin() {
		log.Warn("University admin attempted club login", zap.String("username", admin.Username))
		prometheus.RecordLogin("club", "wrong_login_type")
		return c.JSON(http.StatusForbidden, echo.Map{
			"message": "University admins must use the university admin login",
			"reason":  string(authz.ReasonUniversityAdminForbidden),
		})
	}

	principal := authz.Principal{
		Kind:     authz.ClubAdmin,
		ID:       admin.ID,
		Username: admin.Username,
		ClubID:   *admin.ClubID,
	}

	if err := establishSession(c, principal); err != nil {
		log.Error("Failed to create session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create session"})
	}

	prometheus.RecordLogin("club", "success")
	log.Info("Club admin logged in",
		zap.String("admin_id", admin.ID),
		zap.String("club_id", *admin.ClubID))

	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

// Logout clears the session for the current request.
func Logout(c echo.Context) error {
	if token, ok := middleware.SessionToken(c); ok {
		sessions.Delete(token)
		prometheus.ActiveSessionsGauge.Dec()
	}
	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me returns the current admin principal, or 401 when the session does not
// resolve to an admin.
func Me(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if p.Kind != authz.UniversityAdmin && p.Kind != authz.ClubAdmin {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"message": "Authentication required",
			"reason":  string(authz.ReasonUnauthenticated),
		})
	}

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var admin model.Admin
	if err := database.GetDB().First(&admin, "id = ?", p.ID).Error; err != nil {
		logger.FromContext(c).Warn("Session admin no longer exists", zap.String("admin_id", p.ID))
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"message": "Authentication required",
			"reason":  string(authz.ReasonUnauthenticated),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"admin": admin})
}

// verifyAdminCredentials looks up the admin account and checks the password
// hash. It makes no decision about account class; the login routes do that.
func verifyAdminCredentials(username, password string) (model.Admin, bool) {
	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var admin model.Admin
	if err := database.GetDB().Where("username = ?", username).First(&admin).Error; err != nil {
		return model.Admin{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return model.Admin{}, false
	}

	return admin, true
}

// establishSession creates a session for the principal and sets the cookie.
func establishSession(c echo.Context, p authz.Principal) error {
	token, err := sessions.Create(p)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, sessionTTL)
	prometheus.ActiveSessionsGauge.Inc()
	return nil
}
