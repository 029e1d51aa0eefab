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

// DestinationHandler handles destination HTTP requests
type DestinationHandler struct {
	catalogService *services.CatalogService
	logger         *logrus.Logger
}

// NewDestinationHandler creates a new destination handler
func NewDestinationHandler(catalogService *services.CatalogService, logger *logrus.Logger) *DestinationHandler {
	return &DestinationHandler{catalogService: catalogService, logger: logger}
}

// List handles GET /api/v1/destinations
func (h *DestinationHandler) List(c *gin.Context) {
	destinations, err := h.catalogService.ListDestinations(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"destinations": destinations,
		"total":        len(destinations),
	})
}

// Get handles GET /api/v1/destinations/:id
func (h *DestinationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid destination ID format"))
		return
	}

	destination, err := h.catalogService.GetDestination(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

// Create handles POST /api/v1/admin/destinations
func (h *DestinationHandler) Create(c *gin.Context) {
	var req models.CreateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	destination, err := h.catalogService.CreateDestination(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"destination": destination})
}

// Update handles PUT /api/v1/admin/destinations/:id
func (h *DestinationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid destination ID format"))
		return
	}

	var req models.UpdateDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	destination, err := h.catalogService.UpdateDestination(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"destination": destination})
}

// Delete handles DELETE /api/v1/admin/destinations/:id
func (h *DestinationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid destination ID format"))
		return
	}

	if err := h.catalogService.DeleteDestination(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Destination deleted successfully"})
}
