package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
)

const destinationColumns = `id, name, slug, country, description, hero_image_url, is_active,
	created_at, updated_at`

// DestinationRepository handles destination database operations
type DestinationRepository struct {
	db *sqlx.DB
}

// NewDestinationRepository creates a new DestinationRepository
func NewDestinationRepository(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// GetByID retrieves a destination by id
func (r *DestinationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	var dest models.Destination
	err := r.db.GetContext(ctx, &dest,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("destination not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	return &dest, nil
}

// ListActive returns active destinations ordered by name
func (r *DestinationRepository) ListActive(ctx context.Context) ([]models.Destination, error) {
	destinations := []models.Destination{}
	err := r.db.SelectContext(ctx, &destinations,
		`SELECT `+destinationColumns+` FROM destinations WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	return destinations, nil
}

// Create inserts a new destination
func (r *DestinationRepository) Create(ctx context.Context, dest *models.Destination) (*models.Destination, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO destinations (name, slug, country, description, hero_image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		dest.Name, dest.Slug, dest.Country, dest.Description, dest.HeroImageURL, dest.IsActive,
	).Scan(&dest.ID, &dest.CreatedAt, &dest.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, apperrors.Conflict("a destination with this slug already exists")
		}
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	return dest, nil
}

// Update replaces the mutable content fields of a destination
func (r *DestinationRepository) Update(ctx context.Context, dest *models.Destination) (*models.Destination, error) {
	var updated models.Destination
	err := r.db.GetContext(ctx, &updated, `
		UPDATE destinations
		SET name = $1, country = $2, description = $3, hero_image_url = $4, is_active = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING `+destinationColumns,
		dest.Name, dest.Country, dest.Description, dest.HeroImageURL, dest.IsActive, dest.ID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("destination not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update destination: %w", err)
	}
	return &updated, nil
}

// Delete removes a destination. Fails with Conflict while packages still
// reference it.
func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Conflict("destination is still referenced by packages")
		}
		return fmt.Errorf("failed to delete destination: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("destination not found")
	}

	return nil
}
