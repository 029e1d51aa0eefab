package models

import (
	"time"

	"github.com/google/uuid"
)

// Package represents a bookable travel product belonging to a destination
type Package struct {
	ID            uuid.UUID `json:"id" db:"id"`
	DestinationID uuid.UUID `json:"destination_id" db:"destination_id"`
	Title         string    `json:"title" db:"title"`
	Slug          string    `json:"slug" db:"slug"`
	Summary       *string   `json:"summary,omitempty" db:"summary"`
	Description   *string   `json:"description,omitempty" db:"description"`
	PriceCents    int64     `json:"price_cents" db:"price_cents"`
	Currency      string    `json:"currency" db:"currency"`
	DurationDays  int       `json:"duration_days" db:"duration_days"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// BookablePackage is a package joined with the active flag of its destination,
// used to decide whether the package can accept bookings.
type BookablePackage struct {
	Package
	DestinationActive bool `json:"-" db:"destination_active"`
}

// Bookable reports whether both the package and its destination are active.
func (p *BookablePackage) Bookable() bool {
	return p.IsActive && p.DestinationActive
}

// CreatePackageRequest represents the request to create a package
type CreatePackageRequest struct {
	DestinationID string  `json:"destination_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Slug          string  `json:"slug" binding:"required"`
	Summary       *string `json:"summary,omitempty"`
	Description   *string `json:"description,omitempty"`
	PriceCents    int64   `json:"price_cents" binding:"required,min=0"`
	Currency      string  `json:"currency"`
	DurationDays  int     `json:"duration_days" binding:"required,min=1"`
	ImageURL      *string `json:"image_url,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// UpdatePackageRequest represents the request to update a package
type UpdatePackageRequest struct {
	Title        *string `json:"title,omitempty"`
	Summary      *string `json:"summary,omitempty"`
	Description  *string `json:"description,omitempty"`
	PriceCents   *int64  `json:"price_cents,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
