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

const bookingColumns = `id, package_id, user_id, idempotency_key, booking_date, guest_full_name,
	whatsapp_number, adults, children, infants, traveler_count, note, status, device_info,
	created_at, updated_at`

// BookingRepository handles booking database operations, including the
// transactional create that debits the inventory ledger.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithDecrement atomically creates a booking and decrements the
// availability row for its date. The returned bool is true when the booking
// was replayed from an earlier request carrying the same idempotency key, in
// which case nothing was decremented.
//
// The availability row is read FOR UPDATE, so concurrent bookings for the
// same (package, date) serialize here and the sum of committed traveler
// counts can never exceed the recorded capacity.
func (r *BookingRepository) CreateWithDecrement(ctx context.Context, booking *models.Booking) (*models.Booking, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Retry short-circuit: the same key always yields the same booking, even
	// if the retried request carried different parameters.
	if booking.IdempotencyKey != nil {
		var existing models.Booking
		err := tx.GetContext(ctx, &existing,
			`SELECT `+bookingColumns+` FROM bookings WHERE idempotency_key = $1`,
			*booking.IdempotencyKey)
		if err == nil {
			return &existing, true, nil
		}
		if err != sql.ErrNoRows {
			return nil, false, fmt.Errorf("failed to look up idempotency key: %w", err)
		}
	}

	avail, err := lockForBooking(ctx, tx, booking.PackageID, booking.BookingDate)
	if err != nil {
		return nil, false, err
	}

	if avail.Remaining < booking.TravelerCount {
		return nil, false, apperrors.Conflict(fmt.Sprintf(
			"insufficient capacity: %d remaining, %d requested", avail.Remaining, booking.TravelerCount))
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE package_availability SET remaining = remaining - $1, updated_at = NOW() WHERE id = $2`,
		booking.TravelerCount, avail.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrement availability: %w", err)
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO bookings (
			package_id, user_id, idempotency_key, booking_date, guest_full_name,
			whatsapp_number, adults, children, infants, traveler_count, note, status, device_info
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, status, created_at, updated_at`,
		booking.PackageID, booking.UserID, booking.IdempotencyKey, booking.BookingDate,
		booking.GuestFullName, booking.WhatsappNumber, booking.Adults, booking.Children,
		booking.Infants, booking.TravelerCount, booking.Note, models.BookingStatusPendingContact,
		booking.DeviceInfo,
	).Scan(&booking.ID, &booking.Status, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		// Two concurrent requests raced on the same idempotency key and the
		// other one won. Roll back our decrement and hand back the winner;
		// the collision must never surface to the caller as an error.
		if booking.IdempotencyKey != nil && isUniqueViolation(err, "bookings_idempotency_key_key") {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				return nil, false, fmt.Errorf("failed to roll back after idempotency race: %w", rbErr)
			}
			winner, getErr := r.GetByIdempotencyKey(ctx, *booking.IdempotencyKey)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to resolve idempotency race: %w", getErr)
			}
			return winner, true, nil
		}
		return nil, false, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit booking: %w", err)
	}

	return booking, false, nil
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetByIdempotencyKey retrieves a booking by its idempotency key
func (r *BookingRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking,
		`SELECT `+bookingColumns+` FROM bookings WHERE idempotency_key = $1`, key)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by idempotency key: %w", err)
	}
	return &booking, nil
}

// ListByUser returns the bookings of one user, newest first
func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	bookings := []models.Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// List returns all bookings, optionally filtered by status, newest first
func (r *BookingRepository) List(ctx context.Context, status *models.BookingStatus) ([]models.Booking, error) {
	bookings := []models.Booking{}
	var err error
	if status != nil {
		err = r.db.SelectContext(ctx, &bookings,
			`SELECT `+bookingColumns+` FROM bookings WHERE status = $1 ORDER BY created_at DESC`, *status)
	} else {
		err = r.db.SelectContext(ctx, &bookings,
			`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus sets the booking status. It deliberately does not touch the
// availability ledger: cancelling a booking never restores remaining.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking, `
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+bookingColumns, status, id)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("booking not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}
