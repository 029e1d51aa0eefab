package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentDocument is a schema-free site content blob (services page, support
// page, ...) addressed by key. Version increments on every save so editors can
// detect concurrent overwrites after the fact.
type ContentDocument struct {
	ContentKey string          `json:"content_key" db:"content_key"`
	Body       json.RawMessage `json:"body" db:"body"`
	Version    int             `json:"version" db:"version"`
	UpdatedBy  *uuid.UUID      `json:"updated_by,omitempty" db:"updated_by"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// SaveContentRequest represents the admin request to replace a content document
type SaveContentRequest struct {
	Body json.RawMessage `json:"body" binding:"required"`
}
