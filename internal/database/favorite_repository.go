package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
)

// FavoriteRepository handles the (user, package) favorites relation
type FavoriteRepository struct {
	db *sqlx.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Toggle removes the pair when it exists and inserts it otherwise, returning
// the resulting state. The insert uses ON CONFLICT DO NOTHING so concurrent
// double-clicks never surface a duplicate-key error.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND package_id = $2`, userID, packageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, package_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, package_id) DO NOTHING`, userID, packageID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, apperrors.NotFound("package not found")
		}
		return false, fmt.Errorf("failed to insert favorite: %w", err)
	}

	return true, nil
}

// ListPackagesByUser returns the favorited packages of a user, most recently
// favorited first
func (r *FavoriteRepository) ListPackagesByUser(ctx context.Context, userID uuid.UUID) ([]models.Package, error) {
	packages := []models.Package{}
	err := r.db.SelectContext(ctx, &packages, `
		SELECT p.id, p.destination_id, p.title, p.slug, p.summary, p.description,
		       p.price_cents, p.currency, p.duration_days, p.image_url, p.is_active,
		       p.created_at, p.updated_at
		FROM favorites f
		JOIN packages p ON p.id = f.package_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return packages, nil
}

// Exists reports whether the pair is currently favorited
func (r *FavoriteRepository) Exists(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND package_id = $2)`,
		userID, packageID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}
