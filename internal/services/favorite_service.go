package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/metrics"
	"github.com/albatrip/travel-backend/internal/models"
)

// FavoriteService toggles and lists the (user, package) favorites relation
type FavoriteService struct {
	favorites *database.FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService
func NewFavoriteService(favorites *database.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Toggle flips the favorite state of a package for a user and returns the
// resulting state
func (s *FavoriteService) Toggle(ctx context.Context, userID, packageID uuid.UUID) (bool, error) {
	favorited, err := s.favorites.Toggle(ctx, userID, packageID)
	if err != nil {
		return false, err
	}

	if favorited {
		metrics.FavoritesToggledTotal.WithLabelValues("added").Inc()
	} else {
		metrics.FavoritesToggledTotal.WithLabelValues("removed").Inc()
	}

	return favorited, nil
}

// ListPackages returns the favorited packages of a user
func (s *FavoriteService) ListPackages(ctx context.Context, userID uuid.UUID) ([]models.Package, error) {
	return s.favorites.ListPackagesByUser(ctx, userID)
}
