package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for availability and booking dates.
const DateLayout = "2006-01-02"

// Availability is the per-(package, date) inventory ledger row. Remaining only
// decreases through committed bookings and only increases through admin
// correction; it never exceeds Capacity.
type Availability struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PackageID     uuid.UUID `json:"package_id" db:"package_id"`
	AvailableDate time.Time `json:"available_date" db:"available_date"`
	Capacity      int       `json:"capacity" db:"capacity"`
	Remaining     int       `json:"remaining" db:"remaining"`
	IsOpen        bool      `json:"is_open" db:"is_open"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertAvailabilityRequest represents the admin request to create or replace
// the ledger row for one date. Remaining defaults to Capacity when omitted.
type UpsertAvailabilityRequest struct {
	AvailableDate string `json:"available_date" binding:"required"`
	Capacity      int    `json:"capacity"`
	Remaining     *int   `json:"remaining,omitempty"`
	IsOpen        *bool  `json:"is_open,omitempty"`
}

// Validate checks capacity/remaining bounds and the date format.
// Returns the parsed date and effective remaining.
func (r *UpsertAvailabilityRequest) Validate() (time.Time, int, error) {
	date, err := time.Parse(DateLayout, r.AvailableDate)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("available_date must be in YYYY-MM-DD format")
	}

	if r.Capacity < 0 {
		return time.Time{}, 0, fmt.Errorf("capacity must not be negative")
	}

	remaining := r.Capacity
	if r.Remaining != nil {
		remaining = *r.Remaining
	}
	if remaining < 0 || remaining > r.Capacity {
		return time.Time{}, 0, fmt.Errorf("remaining must be between 0 and capacity")
	}

	return date, remaining, nil
}

// UpdateAvailabilityRequest represents the admin request to correct a ledger
// row outside the booking path. Last write wins.
type UpdateAvailabilityRequest struct {
	Capacity  *int  `json:"capacity,omitempty"`
	Remaining *int  `json:"remaining,omitempty"`
	IsOpen    *bool `json:"is_open,omitempty"`
}
