package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func availabilityRows(id, packageID uuid.UUID, date time.Time, capacity, remaining int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "package_id", "available_date", "capacity", "remaining", "is_open", "created_at", "updated_at",
	}).AddRow(id, packageID, date, capacity, remaining, true, now, now)
}

func bookingRows(booking *models.Booking) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "package_id", "user_id", "idempotency_key", "booking_date", "guest_full_name",
		"whatsapp_number", "adults", "children", "infants", "traveler_count", "note", "status",
		"device_info", "created_at", "updated_at",
	}).AddRow(
		booking.ID, booking.PackageID, booking.UserID, booking.IdempotencyKey, booking.BookingDate,
		booking.GuestFullName, booking.WhatsappNumber, booking.Adults, booking.Children,
		booking.Infants, booking.TravelerCount, booking.Note, booking.Status,
		[]byte(nil), booking.CreatedAt, booking.UpdatedAt,
	)
}

func testBooking(packageID uuid.UUID, date time.Time) *models.Booking {
	return &models.Booking{
		PackageID:      packageID,
		BookingDate:    date,
		GuestFullName:  "Arben Hoxha",
		WhatsappNumber: "+355691234567",
		Adults:         2,
		Children:       1,
		Infants:        0,
		TravelerCount:  3,
	}
}

func TestCreateWithDecrement_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	packageID := uuid.New()
	availID := uuid.New()
	bookingID := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	booking := testBooking(packageID, date)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(packageID, date).
		WillReturnRows(availabilityRows(availID, packageID, date, 10, 10))
	mock.ExpectExec(`UPDATE package_availability SET remaining = remaining - \$1`).
		WithArgs(3, availID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow(bookingID, models.BookingStatusPendingContact, time.Now(), time.Now()))
	mock.ExpectCommit()

	created, replayed, err := repo.CreateWithDecrement(context.Background(), booking)
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, bookingID, created.ID)
	assert.Equal(t, models.BookingStatusPendingContact, created.Status)
	assert.Equal(t, 3, created.TravelerCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithDecrement_IdempotentReplay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	packageID := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	key := "retry-key-1"

	existing := testBooking(packageID, date)
	existing.ID = uuid.New()
	existing.IdempotencyKey = &key
	existing.Status = models.BookingStatusPendingContact

	booking := testBooking(packageID, date)
	booking.IdempotencyKey = &key

	// The existing booking is returned before any locking or decrement
	// happens; no UPDATE or INSERT may be issued.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE idempotency_key = \$1`).
		WithArgs(key).
		WillReturnRows(bookingRows(existing))
	mock.ExpectRollback()

	created, replayed, err := repo.CreateWithDecrement(context.Background(), booking)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, existing.ID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithDecrement_InsufficientCapacity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	packageID := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	booking := testBooking(packageID, date)
	booking.Adults = 5
	booking.TravelerCount = 5

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(packageID, date).
		WillReturnRows(availabilityRows(uuid.New(), packageID, date, 10, 2))
	mock.ExpectRollback()

	_, _, err := repo.CreateWithDecrement(context.Background(), booking)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
	assert.Contains(t, err.Error(), "insufficient capacity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithDecrement_NoOpenAvailability(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	packageID := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	booking := testBooking(packageID, date)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(packageID, date).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, _, err := repo.CreateWithDecrement(context.Background(), booking)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two requests race on the same idempotency key: the loser's insert hits the
// unique constraint, its decrement is rolled back, and the winner's booking
// is returned as a replay instead of an error.
func TestCreateWithDecrement_IdempotencyRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	packageID := uuid.New()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	key := "race-key"

	winner := testBooking(packageID, date)
	winner.ID = uuid.New()
	winner.IdempotencyKey = &key
	winner.Status = models.BookingStatusPendingContact

	booking := testBooking(packageID, date)
	booking.IdempotencyKey = &key

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE idempotency_key = \$1`).
		WithArgs(key).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(packageID, date).
		WillReturnRows(availabilityRows(uuid.New(), packageID, date, 10, 10))
	mock.ExpectExec(`UPDATE package_availability SET remaining = remaining - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_idempotency_key_key"})
	mock.ExpectRollback()
	mock.ExpectQuery(`FROM bookings WHERE idempotency_key = \$1`).
		WithArgs(key).
		WillReturnRows(bookingRows(winner))

	created, replayed, err := repo.CreateWithDecrement(context.Background(), booking)
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, winner.ID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`UPDATE bookings SET status = \$1`).
		WithArgs(models.BookingStatusConfirmed, id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), id, models.BookingStatusConfirmed)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
