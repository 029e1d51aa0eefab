package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
	"github.com/albatrip/travel-backend/internal/services"
)

// AvailabilityHandler handles inventory ledger HTTP requests
type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
	logger              *logrus.Logger
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService *services.AvailabilityService, logger *logrus.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService, logger: logger}
}

// ListByPackage handles GET /api/v1/packages/:id/availability. Closed dates
// are only visible to the admin console via ?include_closed=true.
func (h *AvailabilityHandler) ListByPackage(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid package ID format"))
		return
	}

	includeClosed := c.Query("include_closed") == "true"

	availability, err := h.availabilityService.List(c.Request.Context(), packageID, includeClosed)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availability": availability,
		"total":        len(availability),
	})
}

// Upsert handles POST /api/v1/admin/packages/:id/availability
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	packageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid package ID format"))
		return
	}

	var req models.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	availability, err := h.availabilityService.Upsert(c.Request.Context(), packageID, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"availability": availability})
}

// Update handles PUT /api/v1/admin/availability/:id
func (h *AvailabilityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid availability ID format"))
		return
	}

	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	availability, err := h.availabilityService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// Delete handles DELETE /api/v1/admin/availability/:id
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid availability ID format"))
		return
	}

	if err := h.availabilityService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability deleted"})
}
