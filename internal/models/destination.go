package models

import (
	"time"

	"github.com/google/uuid"
)

// Destination represents a travel destination that groups bookable packages
type Destination struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	Country      string    `json:"country" db:"country"`
	Description  *string   `json:"description,omitempty" db:"description"`
	HeroImageURL *string   `json:"hero_image_url,omitempty" db:"hero_image_url"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDestinationRequest represents the request to create a destination
type CreateDestinationRequest struct {
	Name         string  `json:"name" binding:"required"`
	Slug         string  `json:"slug" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	Description  *string `json:"description,omitempty"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// UpdateDestinationRequest represents the request to update a destination
type UpdateDestinationRequest struct {
	Name         *string `json:"name,omitempty"`
	Country      *string `json:"country,omitempty"`
	Description  *string `json:"description,omitempty"`
	HeroImageURL *string `json:"hero_image_url,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}
