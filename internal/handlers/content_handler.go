package handlers

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/middleware"
	"github.com/albatrip/travel-backend/internal/models"
	"github.com/albatrip/travel-backend/internal/services"
)

var contentKeyRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ContentHandler handles site content HTTP requests
type ContentHandler struct {
	contentService *services.ContentService
	logger         *logrus.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{contentService: contentService, logger: logger}
}

// Get handles GET /api/v1/content/:key
func (h *ContentHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !contentKeyRegex.MatchString(key) {
		respondError(c, h.logger, apperrors.Validation("invalid content key"))
		return
	}

	doc, err := h.contentService.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": doc})
}

// Save handles PUT /api/v1/admin/content/:key
func (h *ContentHandler) Save(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("authentication required"))
		return
	}

	key := c.Param("key")
	if !contentKeyRegex.MatchString(key) {
		respondError(c, h.logger, apperrors.Validation("invalid content key"))
		return
	}

	var req models.SaveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	doc, err := h.contentService.Save(c.Request.Context(), key, req.Body, user.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": doc})
}
