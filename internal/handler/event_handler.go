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
)

// ListEvents handles the public event listing. The clubId query parameter is
// an equality filter, not an authorization boundary; the listing is public.
func ListEvents(c echo.Context) error {
	log := logger.FromContext(c)

	query := database.GetDB()
	if clubID := c.QueryParam("clubId"); clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var events []model.Event
	if err := query.Order("created_at desc").Find(&events).Error; err != nil {
		log.Error("Failed to list events", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve events"})
	}

	return c.JSON(http.StatusOK, events)
}

// GetEvent handles retrieving a single event by ID
func GetEvent(c echo.Context) error {
	id := c.Param("id")

	var event model.Event
	if err := database.GetDB().First(&event, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
	}

	return c.JSON(http.StatusOK, event)
}

// CreateEvent creates an event for the acting club admin's own club. The
// target club comes from the request body, so a cross-tenant create is
// rejected before any row exists.
func CreateEvent(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Time        string `json:"time"`
		Location    string `json:"location"`
		Category    string `json:"category"`
		ClubID      string `json:"clubId"`
		ImageURL    string `json:"imageUrl"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse event creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Title == "" || req.ClubID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title and clubId are required"})
	}

	p, denied := authorize(c, authz.ClubAdminOnly, authz.Target{ClubID: req.ClubID})
	if denied != nil {
		log.Warn("Event creation denied",
			zap.String("principal", p.Kind.String()),
			zap.String("target_club_id", req.ClubID),
			zap.String("reason", string(denied.Reason)))
		return denyJSON(c, *denied)
	}

	var club model.Club
	if err := database.GetDB().First(&club, "id = ?", req.ClubID).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Club not found"})
	}

	event := model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		ClubID:      club.ID,
		ClubName:    club.Name,
		ImageURL:    req.ImageURL,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&event).Error; err != nil {
		log.Error("Failed to create event", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create event"})
	}

	log.Info("Event created",
		zap.String("event_id", event.ID),
		zap.String("club_id", event.ClubID))

	return c.JSON(http.StatusCreated, event)
}

// UpdateEvent applies a partial update to an event. The target club is the
// stored row's clubId, never anything in the request body.
func UpdateEvent(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var event model.Event
	if err := database.GetDB().First(&event, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
	}

	p, denied := authorize(c, authz.ClubAdminOnly, authz.Target{ClubID: event.ClubID})
	if denied != nil {
		log.Warn("Event update denied",
			zap.String("principal", p.Kind.String()),
			zap.String("event_id", event.ID),
			zap.String("reason", string(denied.Reason)))
		return denyJSON(c, *denied)
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
		Time        *string `json:"time"`
		Location    *string `json:"location"`
		Category    *string `json:"category"`
		ImageURL    *string `json:"imageUrl"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse event update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Time != nil {
		event.Time = *req.Time
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}

	// Track database operation
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := database.GetDB().Save(&event).Error; err != nil {
		log.Error("Failed to update event", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update event"})
	}

	log.Info("Event updated", zap.String("event_id", event.ID))
	return c.JSON(http.StatusOK, event)
}
