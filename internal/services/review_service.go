package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/metrics"
	"github.com/albatrip/travel-backend/internal/models"
)

// ReviewService gates review creation on a completed booking owned by the
// reviewer, one review per booking.
type ReviewService struct {
	reviews  *database.ReviewRepository
	bookings *database.BookingRepository
	logger   *logrus.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews *database.ReviewRepository, bookings *database.BookingRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, bookings: bookings, logger: logger}
}

// Create checks eligibility and inserts the review in pending moderation.
func (s *ReviewService) Create(ctx context.Context, req *models.CreateReviewRequest, userID uuid.UUID) (*models.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.Validation("booking_id must be a valid UUID")
	}
	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, apperrors.Validation("package_id must be a valid UUID")
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID == nil || *booking.UserID != userID {
		return nil, apperrors.Forbidden("booking belongs to a different user")
	}
	if booking.PackageID != packageID {
		return nil, apperrors.Validation("package_id does not match the booking")
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.Validation("reviews allowed only after completion")
	}

	review := &models.Review{
		BookingID: bookingID,
		UserID:    userID,
		PackageID: packageID,
		Rating:    req.Rating,
		Title:     req.Title,
		Body:      req.Body,
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}

	metrics.ReviewsCreatedTotal.Inc()
	s.logger.WithFields(logrus.Fields{
		"review_id":  created.ID,
		"booking_id": created.BookingID,
		"rating":     created.Rating,
	}).Info("Review created")

	return created, nil
}

// ListApprovedByPackage returns the publicly visible reviews of a package
func (s *ReviewService) ListApprovedByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	return s.reviews.ListApprovedByPackage(ctx, packageID)
}

// List returns reviews for the admin console
func (s *ReviewService) List(ctx context.Context, status *models.ModerationStatus) ([]models.Review, error) {
	return s.reviews.List(ctx, status)
}

// Moderate relabels a review; any label can replace any other.
func (s *ReviewService) Moderate(ctx context.Context, id uuid.UUID, status models.ModerationStatus) (*models.Review, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("unknown moderation status")
	}
	return s.reviews.SetModerationStatus(ctx, id, status)
}
