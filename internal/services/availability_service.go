package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/models"
)

// AvailabilityService exposes the admin surface of the inventory ledger.
// Everything here runs outside the booking transaction; corrections are
// last-write-wins.
type AvailabilityService struct {
	availability *database.AvailabilityRepository
	packages     *database.PackageRepository
	logger       *logrus.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(availability *database.AvailabilityRepository, packages *database.PackageRepository, logger *logrus.Logger) *AvailabilityService {
	return &AvailabilityService{availability: availability, packages: packages, logger: logger}
}

// Upsert creates or replaces the ledger row for one date of a package.
func (s *AvailabilityService) Upsert(ctx context.Context, packageID uuid.UUID, req *models.UpsertAvailabilityRequest) (*models.Availability, error) {
	date, remaining, err := req.Validate()
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.packages.GetByID(ctx, packageID); err != nil {
		return nil, err
	}

	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	avail, err := s.availability.Upsert(ctx, packageID, date, req.Capacity, remaining, isOpen)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"package_id":     packageID,
		"available_date": req.AvailableDate,
		"capacity":       avail.Capacity,
		"remaining":      avail.Remaining,
	}).Info("Availability upserted")

	return avail, nil
}

// List returns the ledger rows of a package ordered by date ascending.
func (s *AvailabilityService) List(ctx context.Context, packageID uuid.UUID, includeClosed bool) ([]models.Availability, error) {
	return s.availability.List(ctx, packageID, includeClosed)
}

// Update applies a partial admin correction to one ledger row.
func (s *AvailabilityService) Update(ctx context.Context, id uuid.UUID, req *models.UpdateAvailabilityRequest) (*models.Availability, error) {
	current, err := s.availability.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	capacity := current.Capacity
	remaining := current.Remaining
	isOpen := current.IsOpen
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if req.Remaining != nil {
		remaining = *req.Remaining
	}
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}

	if capacity < 0 {
		return nil, apperrors.Validation("capacity must not be negative")
	}
	if remaining < 0 || remaining > capacity {
		return nil, apperrors.Validation("remaining must be between 0 and capacity")
	}

	return s.availability.Update(ctx, id, capacity, remaining, isOpen)
}

// Delete removes one ledger row.
func (s *AvailabilityService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.availability.Delete(ctx, id)
}
