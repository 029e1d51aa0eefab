package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/cache"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/models"
)

// CatalogService serves the public browse surface (destinations, packages)
// through the Redis read cache. Cache failures degrade to database reads.
type CatalogService struct {
	destinations *database.DestinationRepository
	packages     *database.PackageRepository
	cache        *cache.Client
	logger       *logrus.Logger
}

// NewCatalogService creates a new CatalogService. cacheClient may be nil.
func NewCatalogService(
	destinations *database.DestinationRepository,
	packages *database.PackageRepository,
	cacheClient *cache.Client,
	logger *logrus.Logger,
) *CatalogService {
	return &CatalogService{
		destinations: destinations,
		packages:     packages,
		cache:        cacheClient,
		logger:       logger,
	}
}

// ListDestinations returns active destinations, read-through cached.
func (s *CatalogService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	cached, err := s.cache.GetDestinations(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Destination cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	destinations, err := s.destinations.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetDestinations(ctx, destinations); err != nil {
		s.logger.WithError(err).Warn("Destination cache write failed")
	}

	return destinations, nil
}

// GetDestination returns one destination
func (s *CatalogService) GetDestination(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return s.destinations.GetByID(ctx, id)
}

// ListPackages returns active packages, optionally filtered by destination
func (s *CatalogService) ListPackages(ctx context.Context, destinationID *uuid.UUID) ([]models.Package, error) {
	return s.packages.ListActive(ctx, destinationID)
}

// GetPackage returns one package, read-through cached.
func (s *CatalogService) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	cached, err := s.cache.GetPackage(ctx, id)
	if err != nil {
		s.logger.WithError(err).Warn("Package cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPackage(ctx, pkg); err != nil {
		s.logger.WithError(err).Warn("Package cache write failed")
	}

	return pkg, nil
}

// CreateDestination inserts a destination and drops the cached listing
func (s *CatalogService) CreateDestination(ctx context.Context, req *models.CreateDestinationRequest) (*models.Destination, error) {
	dest := &models.Destination{
		Name:         req.Name,
		Slug:         req.Slug,
		Country:      req.Country,
		Description:  req.Description,
		HeroImageURL: req.HeroImageURL,
		IsActive:     true,
	}
	if req.IsActive != nil {
		dest.IsActive = *req.IsActive
	}

	created, err := s.destinations.Create(ctx, dest)
	if err != nil {
		return nil, err
	}

	s.InvalidateDestinations(ctx)
	return created, nil
}

// UpdateDestination applies partial updates to a destination
func (s *CatalogService) UpdateDestination(ctx context.Context, id uuid.UUID, req *models.UpdateDestinationRequest) (*models.Destination, error) {
	dest, err := s.destinations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		dest.Name = *req.Name
	}
	if req.Country != nil {
		dest.Country = *req.Country
	}
	if req.Description != nil {
		dest.Description = req.Description
	}
	if req.HeroImageURL != nil {
		dest.HeroImageURL = req.HeroImageURL
	}
	if req.IsActive != nil {
		dest.IsActive = *req.IsActive
	}

	updated, err := s.destinations.Update(ctx, dest)
	if err != nil {
		return nil, err
	}

	s.InvalidateDestinations(ctx)
	return updated, nil
}

// DeleteDestination removes a destination; blocked while packages reference it
func (s *CatalogService) DeleteDestination(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateDestinations(ctx)
	return nil
}

// CreatePackage inserts a package under a destination
func (s *CatalogService) CreatePackage(ctx context.Context, req *models.CreatePackageRequest) (*models.Package, error) {
	destinationID, err := uuid.Parse(req.DestinationID)
	if err != nil {
		return nil, apperrors.Validation("invalid destination ID format")
	}

	pkg := &models.Package{
		DestinationID: destinationID,
		Title:         req.Title,
		Slug:          req.Slug,
		Summary:       req.Summary,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Currency:      req.Currency,
		DurationDays:  req.DurationDays,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if pkg.Currency == "" {
		pkg.Currency = "EUR"
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	return s.packages.Create(ctx, pkg)
}

// UpdatePackage applies partial updates to a package and drops its cache entry
func (s *CatalogService) UpdatePackage(ctx context.Context, id uuid.UUID, req *models.UpdatePackageRequest) (*models.Package, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		pkg.Title = *req.Title
	}
	if req.Summary != nil {
		pkg.Summary = req.Summary
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, apperrors.Validation("price_cents must not be negative")
		}
		pkg.PriceCents = *req.PriceCents
	}
	if req.Currency != nil {
		pkg.Currency = *req.Currency
	}
	if req.DurationDays != nil {
		if *req.DurationDays < 1 {
			return nil, apperrors.Validation("duration_days must be at least 1")
		}
		pkg.DurationDays = *req.DurationDays
	}
	if req.ImageURL != nil {
		pkg.ImageURL = req.ImageURL
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	updated, err := s.packages.Update(ctx, pkg)
	if err != nil {
		return nil, err
	}

	s.InvalidatePackage(ctx, id)
	return updated, nil
}

// DeletePackage removes a package; blocked while bookings or reviews
// reference it
func (s *CatalogService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidatePackage(ctx, id)
	return nil
}

// InvalidatePackage drops the cached projection after an admin write
func (s *CatalogService) InvalidatePackage(ctx context.Context, id uuid.UUID) {
	if err := s.cache.InvalidatePackage(ctx, id); err != nil {
		s.logger.WithError(err).Warn("Package cache invalidation failed")
	}
}

// InvalidateDestinations drops the cached listing after an admin write
func (s *CatalogService) InvalidateDestinations(ctx context.Context) {
	if err := s.cache.InvalidateDestinations(ctx); err != nil {
		s.logger.WithError(err).Warn("Destination cache invalidation failed")
	}
}
