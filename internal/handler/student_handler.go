package handler

import (
	"club-service/internal/authz"
	"club-service/internal/middleware"
	"club-service/internal/model"
	"club-service/pkg/database"
	"club-service/pkg/logger"
	"club-service/prometheus"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Signup creates a student account and establishes a session for it.
func Signup(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Enrollment string `json:"enrollment"`
		Branch     string `json:"branch"`
		Password   string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Name == "" || req.Email == "" || req.Enrollment == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, email, enrollment, and password are required"})
	}

	// Check for an existing account on either unique key
	var count int64
	database.GetDB().Model(&model.Student{}).
		Where("email = ? OR enrollment = ?", req.Email, req.Enrollment).
		Count(&count)
	if count > 0 {
		log.Warn("Signup for existing account", zap.String("enrollment", req.Enrollment))
		return c.JSON(http.StatusConflict, echo.Map{"message": "An account with this email or enrollment already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create account"})
	}

	student := model.Student{
		Name:       req.Name,
		Email:      req.Email,
		Enrollment: req.Enrollment,
		Branch:     req.Branch,
		Password:   string(hashed),
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&student).Error; err != nil {
		log.Error("Failed to create student", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create account"})
	}

	principal := authz.Principal{
		Kind:       authz.Student,
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Enrollment: student.Enrollment,
	}
	if err := establishSession(c, principal); err != nil {
		log.Error("Failed to create session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create session"})
	}

	prometheus.StudentSignupCounter.Inc()
	log.Info("Student account created", zap.String("student_id", student.ID))

	return c.JSON(http.StatusCreated, echo.Map{"student": student})
}

// StudentLogin verifies student credentials by enrollment number.
func StudentLogin(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Enrollment string `json:"enrollment"`
		Password   string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse student login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Enrollment == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Enrollment and password are required"})
	}

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var student model.Student
	if err := database.GetDB().Where("enrollment = ?", req.Enrollment).First(&student).Error; err != nil {
		prometheus.RecordLogin("student", "invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid enrollment or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		prometheus.RecordLogin("student", "invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid enrollment or password"})
	}

	principal := authz.Principal{
		Kind:       authz.Student,
		ID:         student.ID,
		Name:       student.Name,
		Email:      student.Email,
		Enrollment: student.Enrollment,
	}
	if err := establishSession(c, principal); err != nil {
		log.Error("Failed to create session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create session"})
	}

	prometheus.RecordLogin("student", "success")
	log.Info("Student logged in", zap.String("student_id", student.ID))

	return c.JSON(http.StatusOK, echo.Map{"student": student})
}

// StudentMe returns the current student, or null when the session does not
// resolve to one.
func StudentMe(c echo.Context) error {
	p := middleware.PrincipalFromContext(c)
	if p.Kind != authz.Student {
		return c.JSON(http.StatusOK, echo.Map{"student": nil})
	}

	var student model.Student
	if err := database.GetDB().First(&student, "id = ?", p.ID).Error; err != nil {
		return c.JSON(http.StatusOK, echo.Map{"student": nil})
	}

	return c.JSON(http.StatusOK, echo.Map{"student": student})
}

// RegisterForEvent creates an event registration for the current student.
// The gate requires the body's enrollment number to match the session
// identity before anything is written.
func RegisterForEvent(c echo.Context) error {
	log := logger.FromContext(c)
	eventID := c.Param("id")

	var req struct {
		StudentName      string   `json:"studentName"`
		StudentEmail     string   `json:"studentEmail"`
		EnrollmentNumber string   `json:"enrollmentNumber"`
		Phone            string   `json:"phone"`
		RollNumber       string   `json:"rollNumber"`
		Department       string   `json:"department"`
		Year             string   `json:"year"`
		Interests        []string `json:"interests"`
		Experience       string   `json:"experience"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.StudentName == "" || req.StudentEmail == "" || req.EnrollmentNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Student name, email, and enrollment number are required"})
	}

	p, denied := authorize(c, authz.StudentWrite, authz.Target{Enrollment: req.EnrollmentNumber})
	if denied != nil {
		return denyJSON(c, *denied)
	}

	var event model.Event
	if err := database.GetDB().First(&event, "id = ?", eventID).Error; err != nil {
		log.Warn("Registration for unknown event", zap.String("event_id", eventID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
	}

	var count int64
	database.GetDB().Model(&model.EventRegistration{}).
		Where("event_id = ? AND enrollment_number = ?", event.ID, req.EnrollmentNumber).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Already registered for this event"})
	}

	registration := model.EventRegistration{
		EventID:          event.ID,
		ClubID:           event.ClubID,
		StudentName:      req.StudentName,
		StudentEmail:     req.StudentEmail,
		EnrollmentNumber: req.EnrollmentNumber,
		Phone:            req.Phone,
		RollNumber:       req.RollNumber,
		Department:       req.Department,
		Year:             req.Year,
		Interests:        strings.Join(req.Interests, ","),
		Experience:       req.Experience,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&registration).Error; err != nil {
		log.Error("Failed to create registration", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to register for event"})
	}

	prometheus.EventRegistrationCounter.Inc()
	log.Info("Student registered for event",
		zap.String("student_id", p.ID),
		zap.String("event_id", event.ID),
		zap.String("club_id", event.ClubID))

	return c.JSON(http.StatusCreated, registration)
}

// JoinClub creates a pending membership request for the current student.
func JoinClub(c echo.Context) error {
	log := logger.FromContext(c)
	clubID := c.Param("id")

	var req struct {
		StudentName      string `json:"studentName"`
		StudentEmail     string `json:"studentEmail"`
		EnrollmentNumber string `json:"enrollmentNumber"`
		Department       string `json:"department"`
		Reason           string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse membership request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.StudentName == "" || req.StudentEmail == "" || req.EnrollmentNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Student name, email, and enrollment number are required"})
	}

	p, denied := authorize(c, authz.StudentWrite, authz.Target{Enrollment: req.EnrollmentNumber})
	if denied != nil {
		return denyJSON(c, *denied)
	}

	var club model.Club
	if err := database.GetDB().First(&club, "id = ?", clubID).Error; err != nil {
		log.Warn("Membership request for unknown club", zap.String("club_id", clubID))
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Club not found"})
	}

	// One live request per student per club: pending and approved block a new one
	var count int64
	database.GetDB().Model(&model.ClubMembership{}).
		Where("club_id = ? AND enrollment_number = ? AND status IN ?",
			club.ID, req.EnrollmentNumber, []string{model.MembershipPending, model.MembershipApproved}).
		Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "A membership request for this club already exists"})
	}

	membership := model.ClubMembership{
		ClubID:           club.ID,
		StudentName:      req.StudentName,
		StudentEmail:     req.StudentEmail,
		EnrollmentNumber: req.EnrollmentNumber,
		Department:       req.Department,
		Reason:           req.Reason,
		Status:           model.MembershipPending,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&membership).Error; err != nil {
		log.Error("Failed to create membership", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to submit membership request"})
	}

	prometheus.MembershipStatusCounter.WithLabelValues(model.MembershipPending).Inc()
	log.Info("Membership request created",
		zap.String("student_id", p.ID),
		zap.String("club_id", club.ID))

	return c.JSON(http.StatusCreated, membership)
}
