package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ModerationStatus is the admin-controlled visibility label of a review.
// Transitions carry no state machine; any label can replace any other.
type ModerationStatus string

const (
	ModerationStatusPending  ModerationStatus = "pending"
	ModerationStatusApproved ModerationStatus = "approved"
	ModerationStatusRejected ModerationStatus = "rejected"
)

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationStatusPending, ModerationStatusApproved, ModerationStatusRejected:
		return true
	}
	return false
}

// Review represents a customer review tied to exactly one completed booking
type Review struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	BookingID        uuid.UUID        `json:"booking_id" db:"booking_id"`
	UserID           uuid.UUID        `json:"user_id" db:"user_id"`
	PackageID        uuid.UUID        `json:"package_id" db:"package_id"`
	Rating           int              `json:"rating" db:"rating"`
	Title            *string          `json:"title,omitempty" db:"title"`
	Body             string           `json:"body" db:"body"`
	ModerationStatus ModerationStatus `json:"moderation_status" db:"moderation_status"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// CreateReviewRequest represents the request to create a review
type CreateReviewRequest struct {
	BookingID string  `json:"booking_id" binding:"required"`
	PackageID string  `json:"package_id" binding:"required"`
	Rating    int     `json:"rating" binding:"required"`
	Title     *string `json:"title,omitempty"`
	Body      string  `json:"body" binding:"required"`
}

// Validate checks the rating range and body presence.
func (r *CreateReviewRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required")
	}
	return nil
}

// ModerateReviewRequest represents the admin request to relabel a review
type ModerateReviewRequest struct {
	ModerationStatus ModerationStatus `json:"moderation_status" binding:"required"`
}
