package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus tracks a booking through the operator contact workflow
type BookingStatus string

const (
	// BookingStatusPendingContact is the initial status: inventory is held
	// and an operator still has to reach the customer on WhatsApp.
	BookingStatusPendingContact BookingStatus = "pending_contact"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPendingContact, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows moving from s to
// next. Completed and cancelled are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPendingContact:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	}
	return false
}

// Booking represents a reservation of travelers against one availability
// date of a package. UserID is nil for guest checkouts.
type Booking struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	PackageID      uuid.UUID       `json:"package_id" db:"package_id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty" db:"user_id"`
	IdempotencyKey *string         `json:"-" db:"idempotency_key"`
	BookingDate    time.Time       `json:"booking_date" db:"booking_date"`
	GuestFullName  string          `json:"full_name" db:"guest_full_name"`
	WhatsappNumber string          `json:"whatsapp_number" db:"whatsapp_number"`
	Adults         int             `json:"adults" db:"adults"`
	Children       int             `json:"children" db:"children"`
	Infants        int             `json:"infants" db:"infants"`
	TravelerCount  int             `json:"traveler_count" db:"traveler_count"`
	Note           *string         `json:"note,omitempty" db:"note"`
	Status         BookingStatus   `json:"status" db:"status"`
	DeviceInfo     json.RawMessage `json:"-" db:"device_info"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest represents the request to book a package date.
// Traveler counts are pointers so "omitted" and "zero" stay distinguishable.
type CreateBookingRequest struct {
	PackageID      string  `json:"package_id" binding:"required"`
	BookingDate    string  `json:"booking_date" binding:"required"`
	FullName       string  `json:"full_name" binding:"required"`
	WhatsappNumber string  `json:"whatsapp_number" binding:"required"`
	Adults         *int    `json:"adults,omitempty"`
	Children       *int    `json:"children,omitempty"`
	Infants        *int    `json:"infants,omitempty"`
	Note           *string `json:"note,omitempty"`
}

// TravelerCounts resolves the requested traveler counts. Adults defaults to 1
// when every count was omitted, so the minimal request books a single adult.
func (r *CreateBookingRequest) TravelerCounts() (adults, children, infants int) {
	if r.Adults == nil && r.Children == nil && r.Infants == nil {
		return 1, 0, 0
	}
	if r.Adults != nil {
		adults = *r.Adults
	}
	if r.Children != nil {
		children = *r.Children
	}
	if r.Infants != nil {
		infants = *r.Infants
	}
	return adults, children, infants
}

// Validate checks the request shape and returns the parsed booking date.
func (r *CreateBookingRequest) Validate() (time.Time, error) {
	if strings.TrimSpace(r.FullName) == "" {
		return time.Time{}, errors.New("full_name is required")
	}

	date, err := time.Parse(DateLayout, r.BookingDate)
	if err != nil {
		return time.Time{}, errors.New("booking_date must be in YYYY-MM-DD format")
	}

	adults, children, infants := r.TravelerCounts()
	if adults < 0 || children < 0 || infants < 0 {
		return time.Time{}, errors.New("traveler counts must not be negative")
	}
	if adults+children+infants < 1 {
		return time.Time{}, errors.New("at least one traveler is required")
	}

	return date, nil
}

// UpdateBookingStatusRequest represents the admin request to advance a
// booking through its status machine
type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
