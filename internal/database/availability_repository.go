package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
)

// AvailabilityRepository handles the per-date inventory ledger
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new AvailabilityRepository
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Upsert creates or replaces the ledger row for one (package, date). The
// caller has already validated capacity/remaining bounds.
func (r *AvailabilityRepository) Upsert(ctx context.Context, packageID uuid.UUID, date time.Time, capacity, remaining int, isOpen bool) (*models.Availability, error) {
	query := `
		INSERT INTO package_availability (package_id, available_date, capacity, remaining, is_open)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (package_id, available_date)
		DO UPDATE SET capacity = EXCLUDED.capacity,
		              remaining = EXCLUDED.remaining,
		              is_open = EXCLUDED.is_open,
		              updated_at = NOW()
		RETURNING id, package_id, available_date, capacity, remaining, is_open, created_at, updated_at`

	var avail models.Availability
	err := r.db.GetContext(ctx, &avail, query, packageID, date, capacity, remaining, isOpen)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFound("package not found")
		}
		return nil, fmt.Errorf("failed to upsert availability: %w", err)
	}

	return &avail, nil
}

// List returns the ledger rows for a package ordered by date ascending.
func (r *AvailabilityRepository) List(ctx context.Context, packageID uuid.UUID, includeClosed bool) ([]models.Availability, error) {
	query := `
		SELECT id, package_id, available_date, capacity, remaining, is_open, created_at, updated_at
		FROM package_availability
		WHERE package_id = $1`
	if !includeClosed {
		query += ` AND is_open = TRUE`
	}
	query += ` ORDER BY available_date ASC`

	rows := []models.Availability{}
	if err := r.db.SelectContext(ctx, &rows, query, packageID); err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	return rows, nil
}

// GetByID returns a single ledger row.
func (r *AvailabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Availability, error) {
	var avail models.Availability
	err := r.db.GetContext(ctx, &avail, `
		SELECT id, package_id, available_date, capacity, remaining, is_open, created_at, updated_at
		FROM package_availability
		WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("availability not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return &avail, nil
}

// Update applies an admin correction outside the booking path. Last write
// wins; there is no concurrency token on this row.
func (r *AvailabilityRepository) Update(ctx context.Context, id uuid.UUID, capacity, remaining int, isOpen bool) (*models.Availability, error) {
	query := `
		UPDATE package_availability
		SET capacity = $1, remaining = $2, is_open = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, package_id, available_date, capacity, remaining, is_open, created_at, updated_at`

	var avail models.Availability
	err := r.db.GetContext(ctx, &avail, query, capacity, remaining, isOpen, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("availability not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	return &avail, nil
}

// Delete removes a ledger row. Bookings already committed against the date
// are untouched.
func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM package_availability WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("availability not found")
	}

	return nil
}

// lockForBooking reads the open ledger row for (package, date) with a
// row-level exclusive lock. Concurrent booking transactions for the same row
// block here until the holder commits or rolls back. Must only be called
// inside the booking transaction.
func lockForBooking(ctx context.Context, tx *sqlx.Tx, packageID uuid.UUID, date time.Time) (*models.Availability, error) {
	var avail models.Availability
	err := tx.GetContext(ctx, &avail, `
		SELECT id, package_id, available_date, capacity, remaining, is_open, created_at, updated_at
		FROM package_availability
		WHERE package_id = $1 AND available_date = $2 AND is_open = TRUE
		FOR UPDATE`, packageID, date)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("no open availability for the requested date")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock availability row: %w", err)
	}
	return &avail, nil
}
