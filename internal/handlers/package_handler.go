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

// PackageHandler handles package HTTP requests
type PackageHandler struct {
	catalogService *services.CatalogService
	logger         *logrus.Logger
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(catalogService *services.CatalogService, logger *logrus.Logger) *PackageHandler {
	return &PackageHandler{catalogService: catalogService, logger: logger}
}

// List handles GET /api/v1/packages with an optional ?destination_id= filter
func (h *PackageHandler) List(c *gin.Context) {
	var destinationID *uuid.UUID
	if raw := c.Query("destination_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, h.logger, apperrors.Validation("invalid destination_id format"))
			return
		}
		destinationID = &id
	}

	packages, err := h.catalogService.ListPackages(c.Request.Context(), destinationID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"packages": packages,
		"total":    len(packages),
	})
}

// Get handles GET /api/v1/packages/:id
func (h *PackageHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid package ID format"))
		return
	}

	pkg, err := h.catalogService.GetPackage(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// Create handles POST /api/v1/admin/packages
func (h *PackageHandler) Create(c *gin.Context) {
	var req models.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	pkg, err := h.catalogService.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

// Update handles PUT /api/v1/admin/packages/:id
func (h *PackageHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid package ID format"))
		return
	}

	var req models.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	pkg, err := h.catalogService.UpdatePackage(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

// Delete handles DELETE /api/v1/admin/packages/:id
func (h *PackageHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid package ID format"))
		return
	}

	if err := h.catalogService.DeletePackage(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
