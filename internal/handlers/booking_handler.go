package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/middleware"
	"github.com/albatrip/travel-backend/internal/models"
	"github.com/albatrip/travel-backend/internal/services"
	"github.com/albatrip/travel-backend/internal/utils"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

// Create handles POST /api/v1/bookings. Guests may book without an account;
// an Idempotency-Key header makes retries safe.
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	var userID *uuid.UUID
	if user, ok := middleware.GetUserContext(c); ok {
		userID = &user.UserID
	}

	var idempotencyKey *string
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		idempotencyKey = &key
	}

	var deviceInfo json.RawMessage
	if info := utils.ParseUserAgent(c.Request.UserAgent()); info.DeviceType != "unknown" {
		if data, err := json.Marshal(info); err == nil {
			deviceInfo = data
		}
	}

	booking, replayed, err := h.bookingService.Create(c.Request.Context(), &req, userID, idempotencyKey, deviceInfo)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// A replayed booking returns the original resource; the business content
	// is identical to the first response.
	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"booking": booking})
}

// ListMine handles GET /api/v1/bookings/my
func (h *BookingHandler) ListMine(c *gin.Context) {
	user, ok := middleware.GetUserContext(c)
	if !ok {
		respondError(c, h.logger, apperrors.Unauthorized("authentication required"))
		return
	}

	bookings, err := h.bookingService.ListByUser(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// List handles GET /api/v1/admin/bookings with an optional ?status= filter
func (h *BookingHandler) List(c *gin.Context) {
	var status *models.BookingStatus
	if raw := c.Query("status"); raw != "" {
		s := models.BookingStatus(raw)
		if !s.Valid() {
			respondError(c, h.logger, apperrors.Validation("unknown booking status"))
			return
		}
		status = &s
	}

	bookings, err := h.bookingService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// UpdateStatus handles PATCH /api/v1/admin/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid booking ID format"))
		return
	}

	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, apperrors.Validation("invalid request body: "+err.Error()))
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
