package handler

import (
	"club-service/internal/model"
	"club-service/pkg/database"
	"club-service/pkg/logger"
	"club-service/prometheus"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListClubs handles the public club directory listing
func ListClubs(c echo.Context) error {
	log := logger.FromContext(c)

	// Track database operation
	defer prometheus.TrackDBOperation("query")(time.Now())

	var clubs []model.Club
	if err := database.GetDB().Order("name").Find(&clubs).Error; err != nil {
		log.Error("Failed to list clubs", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to retrieve clubs"})
	}

	return c.JSON(http.StatusOK, clubs)
}

// GetClub handles retrieving a single club by ID
func GetClub(c echo.Context) error {
	id := c.Param("id")

	var club model.Club
	if err := database.GetDB().First(&club, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Club not found"})
	}

	return c.JSON(http.StatusOK, club)
}

// CreateClub creates a club. Reached only through the university admin guard.
func CreateClub(c echo.Context) error {
	log := logger.FromContext(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		LogoURL     string `json:"logoUrl"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse club creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Club name is required"})
	}

	var count int64
	database.GetDB().Model(&model.Club{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "A club with this name already exists"})
	}

	club := model.Club{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		LogoURL:     req.LogoURL,
	}

	// Track database operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := database.GetDB().Create(&club).Error; err != nil {
		log.Error("Failed to create club", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create club"})
	}

	log.Info("Club created", zap.String("club_id", club.ID), zap.String("name", club.Name))
	return c.JSON(http.StatusCreated, club)
}

// UpdateClub applies a partial update to a club. Reached only through the
// university admin guard.
func UpdateClub(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var club model.Club
	if err := database.GetDB().First(&club, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Club not found"})
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Category    *string `json:"category"`
		LogoURL     *string `json:"logoUrl"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse club update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Could not parse request body"})
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.LogoURL != nil {
		club.LogoURL = *req.LogoURL
	}

	// Track database operation
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := database.GetDB().Save(&club).Error; err != nil {
		log.Error("Failed to update club", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update club"})
	}

	log.Info("Club updated", zap.String("club_id", club.ID))
	return c.JSON(http.StatusOK, club)
}
