package handler

import (
	"club-service/internal/authz"
	"club-service/internal/model"
	"club-service/pkg/database"
	"club-service/pkg/logger"
	"club-service/prometheus"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListClubMemberships returns the membership requests for a club. Tenant
// access is enforced by the club admin guard on the route.
func ListClubMemberships(c echo.Context) error {
	log := logger.FromContext(c)
	clubID := c.Param("clubId")

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var memberships []model.ClubMembership
	if err := database.GetDB().Where("club_id = ?", clubID).Order("joined_at desc").Find(&memberships).Error; err != nil {
		log.Error("Failed to list memberships", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve memberships"})
	}

	return c.JSON(http.StatusOK, memberships)
}

// UpdateMembershipStatus moves a pending membership to approved or rejected.
// The target club is the stored row's clubId. Terminal states never change.
func UpdateMembershipStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse membership update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Status != model.MembershipApproved && req.Status != model.MembershipRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Status must be approved or rejected"})
	}

	var membership model.ClubMembership
	if err := database.GetDB().First(&membership, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Membership not found"})
	}

	p, denied := authorize(c, authz.ClubAdminOnly, authz.Target{ClubID: membership.ClubID})
	if denied != nil {
		log.Warn("Membership update denied",
			zap.String("principal", p.Kind.String()),
			zap.String("membership_id", membership.ID),
			zap.String("reason", string(denied.Reason)))
		return denyJSON(c, *denied)
	}

	if membership.IsTerminal() {
		return c.JSON(http.StatusConflict, echo.Map{
			"message": "Membership has already been " + membership.Status,
		})
	}

	membership.Status = req.Status

	// Track database operation
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := database.GetDB().Save(&membership).Error; err != nil {
		log.Error("Failed to update membership", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update membership"})
	}

	// Approval grows the club roster
	if membership.Status == model.MembershipApproved {
		database.GetDB().Model(&model.Club{}).
			Where("id = ?", membership.ClubID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1"))
	}

	prometheus.MembershipStatusCounter.WithLabelValues(membership.Status).Inc()
	log.Info("Membership status updated",
		zap.String("membership_id", membership.ID),
		zap.String("status", membership.Status))

	return c.JSON(http.StatusOK, membership)
}

// AwardStudentPoints records a point award from a club to a student. The
// target club comes from the request body.
func AwardStudentPoints(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		ClubID           string `json:"clubId"`
		EnrollmentNumber string `json:"enrollmentNumber"`
		Points           int    `json:"points"`
		Reason           string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse points request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.ClubID == "" || req.EnrollmentNumber == "" || req.Points == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ClubId, enrollmentNumber, and a non-zero points value are required"})
	}

	p, denied := authorize(c, authz.ClubAdminOnly, authz.Target{ClubID: req.ClubID})
	if denied != nil {
		log.Warn("Points award denied",
			zap.String("principal", p.Kind.String()),
			zap.String("target_club_id", req.ClubID),
			zap.String("reason", string(denied.Reason)))
		return denyJSON(c, *denied)
	}

	award := model.StudentPoints{
		ClubID:           req.ClubID,
		EnrollmentNumber: req.EnrollmentNumber,
		Points:           req.Points,
		Reason:           req.Reason,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&award).Error; err != nil {
		log.Error("Failed to award points", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to award points"})
	}

	prometheus.PointsAwardedCounter.Inc()
	log.Info("Points awarded",
		zap.String("club_id", award.ClubID),
		zap.String("enrollment", award.EnrollmentNumber),
		zap.Int("points", award.Points))

	return c.JSON(http.StatusCreated, award)
}

// ListStudentPoints returns a club's point award ledger.
func ListStudentPoints(c echo.Context) error {
	log := logger.FromContext(c)
	clubID := c.Param("clubId")

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var awards []model.StudentPoints
	if err := database.GetDB().Where("club_id = ?", clubID).Order("awarded_at desc").Find(&awards).Error; err != nil {
		log.Error("Failed to list points", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve points"})
	}

	return c.JSON(http.StatusOK, awards)
}

// ListEventRegistrations returns the registrations for a club's events.
func ListEventRegistrations(c echo.Context) error {
	log := logger.FromContext(c)
	clubID := c.Param("clubId")

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var registrations []model.EventRegistration
	if err := database.GetDB().Where("club_id = ?", clubID).Order("registered_at desc").Find(&registrations).Error; err != nil {
		log.Error("Failed to list registrations", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve registrations"})
	}

	return c.JSON(http.StatusOK, registrations)
}

// CreateAchievement records an achievement for a student within a club. The
// target club comes from the request body.
func CreateAchievement(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		ClubID           string `json:"clubId"`
		EnrollmentNumber string `json:"enrollmentNumber"`
		StudentName      string `json:"studentName"`
		Title            string `json:"title"`
		Description      string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse achievement request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.ClubID == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "ClubId and title are required"})
	}

	p, denied := authorize(c, authz.ClubAdminOnly, authz.Target{ClubID: req.ClubID})
	if denied != nil {
		log.Warn("Achievement creation denied",
			zap.String("principal", p.Kind.String()),
			zap.String("target_club_id", req.ClubID),
			zap.String("reason", string(denied.Reason)))
		return denyJSON(c, *denied)
	}

	achievement := model.Achievement{
		ClubID:           req.ClubID,
		EnrollmentNumber: req.EnrollmentNumber,
		StudentName:      req.StudentName,
		Title:            req.Title,
		Description:      req.Description,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&achievement).Error; err != nil {
		log.Error("Failed to create achievement", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create achievement"})
	}

	log.Info("Achievement created",
		zap.String("achievement_id", achievement.ID),
		zap.String("club_id", achievement.ClubID))

	return c.JSON(http.StatusCreated, achievement)
}

// ListAchievements returns a club's achievements.
func ListAchievements(c echo.Context) error {
	log := logger.FromContext(c)
	clubID := c.Param("clubId")

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var achievements []model.Achievement
	if err := database.GetDB().Where("club_id = ?", clubID).Order("awarded_at desc").Find(&achievements).Error; err != nil {
		log.Error("Failed to list achievements", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve achievements"})
	}

	return c.JSON(http.StatusOK, achievements)
}
