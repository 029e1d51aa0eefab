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

const packageColumns = `id, destination_id, title, slug, summary, description, price_cents,
	currency, duration_days, image_url, is_active, created_at, updated_at`

// PackageRepository handles package database operations
type PackageRepository struct {
	db *sqlx.DB
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// GetByID retrieves a package by id
func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	err := r.db.GetContext(ctx, &pkg,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("package not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

// GetBookable retrieves a package joined with its destination's active flag.
// The booking path uses this to reject packages whose package or destination
// has been deactivated.
func (r *PackageRepository) GetBookable(ctx context.Context, id uuid.UUID) (*models.BookablePackage, error) {
	var pkg models.BookablePackage
	err := r.db.GetContext(ctx, &pkg, `
		SELECT p.id, p.destination_id, p.title, p.slug, p.summary, p.description,
		       p.price_cents, p.currency, p.duration_days, p.image_url, p.is_active,
		       p.created_at, p.updated_at, d.is_active AS destination_active
		FROM packages p
		JOIN destinations d ON d.id = p.destination_id
		WHERE p.id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("package not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

// ListActive returns active packages, optionally filtered by destination
func (r *PackageRepository) ListActive(ctx context.Context, destinationID *uuid.UUID) ([]models.Package, error) {
	packages := []models.Package{}
	var err error
	if destinationID != nil {
		err = r.db.SelectContext(ctx, &packages,
			`SELECT `+packageColumns+` FROM packages WHERE is_active = TRUE AND destination_id = $1 ORDER BY title`,
			*destinationID)
	} else {
		err = r.db.SelectContext(ctx, &packages,
			`SELECT `+packageColumns+` FROM packages WHERE is_active = TRUE ORDER BY title`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// Create inserts a new package
func (r *PackageRepository) Create(ctx context.Context, pkg *models.Package) (*models.Package, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO packages (destination_id, title, slug, summary, description, price_cents,
			currency, duration_days, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		pkg.DestinationID, pkg.Title, pkg.Slug, pkg.Summary, pkg.Description, pkg.PriceCents,
		pkg.Currency, pkg.DurationDays, pkg.ImageURL, pkg.IsActive,
	).Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return nil, apperrors.Conflict("a package with this slug already exists")
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound("destination not found")
		}
		return nil, fmt.Errorf("failed to create package: %w", err)
	}
	return pkg, nil
}

// Update replaces the mutable content fields of a package
func (r *PackageRepository) Update(ctx context.Context, pkg *models.Package) (*models.Package, error) {
	var updated models.Package
	err := r.db.GetContext(ctx, &updated, `
		UPDATE packages
		SET title = $1, summary = $2, description = $3, price_cents = $4, currency = $5,
		    duration_days = $6, image_url = $7, is_active = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+packageColumns,
		pkg.Title, pkg.Summary, pkg.Description, pkg.PriceCents, pkg.Currency,
		pkg.DurationDays, pkg.ImageURL, pkg.IsActive, pkg.ID)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("package not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	return &updated, nil
}

// Delete removes a package. Fails with Conflict while availability, bookings,
// favorites, or reviews still reference it.
func (r *PackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Conflict("package is still referenced by bookings, availability, favorites, or reviews")
		}
		return fmt.Errorf("failed to delete package: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("package not found")
	}

	return nil
}
