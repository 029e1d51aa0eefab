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

const reviewColumns = `id, booking_id, user_id, package_id, rating, title, body,
	moderation_status, created_at, updated_at`

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review in moderation state pending. The unique constraint
// on booking_id turns a second review for the same booking into Conflict.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO reviews (booking_id, user_id, package_id, rating, title, body, moderation_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, moderation_status, created_at, updated_at`,
		review.BookingID, review.UserID, review.PackageID, review.Rating, review.Title,
		review.Body, models.ModerationStatusPending,
	).Scan(&review.ID, &review.ModerationStatus, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "reviews_booking_id_key") {
			return nil, apperrors.Conflict("a review already exists for this booking")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// GetByID retrieves a review by id
func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review,
		`SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}

// ListApprovedByPackage returns the publicly visible reviews of a package,
// newest first
func (r *ReviewRepository) ListApprovedByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.db.SelectContext(ctx, &reviews, `
		SELECT `+reviewColumns+` FROM reviews
		WHERE package_id = $1 AND moderation_status = $2
		ORDER BY created_at DESC`, packageID, models.ModerationStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// List returns all reviews, optionally filtered by moderation status, for the
// admin console
func (r *ReviewRepository) List(ctx context.Context, status *models.ModerationStatus) ([]models.Review, error) {
	reviews := []models.Review{}
	var err error
	if status != nil {
		err = r.db.SelectContext(ctx, &reviews,
			`SELECT `+reviewColumns+` FROM reviews WHERE moderation_status = $1 ORDER BY created_at DESC`, *status)
	} else {
		err = r.db.SelectContext(ctx, &reviews,
			`SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// SetModerationStatus relabels a review. Moderation is a plain label with no
// transition rules.
func (r *ReviewRepository) SetModerationStatus(ctx context.Context, id uuid.UUID, status models.ModerationStatus) (*models.Review, error) {
	var review models.Review
	err := r.db.GetContext(ctx, &review, `
		UPDATE reviews SET moderation_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+reviewColumns, status, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update review moderation status: %w", err)
	}
	return &review, nil
}
