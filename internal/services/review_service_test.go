package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/models"
)

func newReviewService(t *testing.T) (*ReviewService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewReviewService(database.NewReviewRepository(db), database.NewBookingRepository(db), logger), mock
}

func reviewBookingRows(booking *models.Booking) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "package_id", "user_id", "idempotency_key", "booking_date", "guest_full_name",
		"whatsapp_number", "adults", "children", "infants", "traveler_count", "note", "status",
		"device_info", "created_at", "updated_at",
	}).AddRow(
		booking.ID, booking.PackageID, booking.UserID, nil, booking.BookingDate,
		booking.GuestFullName, booking.WhatsappNumber, booking.Adults, booking.Children,
		booking.Infants, booking.TravelerCount, nil, booking.Status,
		[]byte(nil), booking.CreatedAt, booking.UpdatedAt,
	)
}

func completedBooking(userID uuid.UUID) *models.Booking {
	return &models.Booking{
		ID:             uuid.New(),
		PackageID:      uuid.New(),
		UserID:         &userID,
		BookingDate:    time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
		GuestFullName:  "Arben Hoxha",
		WhatsappNumber: "+355691234567",
		Adults:         2,
		TravelerCount:  2,
		Status:         models.BookingStatusCompleted,
	}
}

func reviewRequest(booking *models.Booking) *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		BookingID: booking.ID.String(),
		PackageID: booking.PackageID.String(),
		Rating:    5,
		Body:      "Wonderful trip, great guide.",
	}
}

func TestReviewCreate_AllowedAfterCompletion(t *testing.T) {
	svc, mock := newReviewService(t)

	userID := uuid.New()
	booking := completedBooking(userID)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WithArgs(booking.ID).
		WillReturnRows(reviewBookingRows(booking))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "moderation_status", "created_at", "updated_at"}).
			AddRow(uuid.New(), models.ModerationStatusPending, time.Now(), time.Now()))

	review, err := svc.Create(context.Background(), reviewRequest(booking), userID)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationStatusPending, review.ModerationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreate_RejectedBeforeCompletion(t *testing.T) {
	svc, mock := newReviewService(t)

	userID := uuid.New()
	booking := completedBooking(userID)
	booking.Status = models.BookingStatusPendingContact

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WillReturnRows(reviewBookingRows(booking))

	_, err := svc.Create(context.Background(), reviewRequest(booking), userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), "after completion")
}

func TestReviewCreate_ForbiddenForOtherUsersBooking(t *testing.T) {
	svc, mock := newReviewService(t)

	owner := uuid.New()
	booking := completedBooking(owner)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WillReturnRows(reviewBookingRows(booking))

	_, err := svc.Create(context.Background(), reviewRequest(booking), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestReviewCreate_GuestBookingHasNoReviewer(t *testing.T) {
	svc, mock := newReviewService(t)

	userID := uuid.New()
	booking := completedBooking(userID)
	booking.UserID = nil

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WillReturnRows(reviewBookingRows(booking))

	_, err := svc.Create(context.Background(), reviewRequest(booking), userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeForbidden))
}

func TestReviewCreate_SecondReviewConflicts(t *testing.T) {
	svc, mock := newReviewService(t)

	userID := uuid.New()
	booking := completedBooking(userID)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WillReturnRows(reviewBookingRows(booking))
	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "reviews_booking_id_key"})

	_, err := svc.Create(context.Background(), reviewRequest(booking), userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConflict))
}

func TestReviewCreate_PackageMismatch(t *testing.T) {
	svc, mock := newReviewService(t)

	userID := uuid.New()
	booking := completedBooking(userID)

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
		WillReturnRows(reviewBookingRows(booking))

	req := reviewRequest(booking)
	req.PackageID = uuid.New().String()

	_, err := svc.Create(context.Background(), req, userID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	svc, _ := newReviewService(t)

	req := &models.CreateReviewRequest{
		BookingID: uuid.New().String(),
		PackageID: uuid.New().String(),
		Rating:    6,
		Body:      "too good",
	}

	_, err := svc.Create(context.Background(), req, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
}
