package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a (user, package) relation with toggle semantics; existence
// means the package is favorited.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	PackageID uuid.UUID `json:"package_id" db:"package_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToggleFavoriteResponse reports the state after a toggle
type ToggleFavoriteResponse struct {
	Favorite bool `json:"favorite"`
}
