package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/models"
	"github.com/albatrip/travel-backend/internal/services"
	"github.com/albatrip/travel-backend/pkg/validator"
)

func newBookingTestServer(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := services.NewBookingService(
		database.NewBookingRepository(db),
		database.NewPackageRepository(db),
		validator.NewPhoneValidator(),
		nil,
		logger,
	)
	handler := NewBookingHandler(svc, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/bookings", handler.Create)
	return router, mock
}

func postBooking(t *testing.T, router *gin.Engine, body, idempotencyKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func handlerPackageRows(id uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "destination_id", "title", "slug", "summary", "description", "price_cents",
		"currency", "duration_days", "image_url", "is_active", "created_at", "updated_at",
		"destination_active",
	}).AddRow(id, uuid.New(), "Albanian Riviera Week", "riviera-week", nil, nil, 79900,
		"EUR", 7, nil, true, now, now, true)
}

func handlerAvailabilityRows(packageID uuid.UUID, remaining int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "package_id", "available_date", "capacity", "remaining", "is_open", "created_at", "updated_at",
	}).AddRow(uuid.New(), packageID, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), 10, remaining, true, now, now)
}

func TestBookingCreateEndpoint_New(t *testing.T) {
	router, mock := newBookingTestServer(t)

	packageID := uuid.New()
	body := `{"package_id":"` + packageID.String() + `","booking_date":"2026-09-15",` +
		`"full_name":"Arben Hoxha","whatsapp_number":"+355691234567","adults":2,"children":1}`

	mock.ExpectQuery(`FROM packages p\s+JOIN destinations`).
		WillReturnRows(handlerPackageRows(packageID))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(handlerAvailabilityRows(packageID, 10))
	mock.ExpectExec(`UPDATE package_availability SET remaining = remaining - \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow(uuid.New(), models.BookingStatusPendingContact, time.Now(), time.Now()))
	mock.ExpectCommit()

	w := postBooking(t, router, body, "")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"traveler_count":3`)
	assert.Contains(t, w.Body.String(), `"pending_contact"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateEndpoint_ReplayReturns200(t *testing.T) {
	router, mock := newBookingTestServer(t)

	packageID := uuid.New()
	key := "client-retry-7"
	body := `{"package_id":"` + packageID.String() + `","booking_date":"2026-09-15",` +
		`"full_name":"Arben Hoxha","whatsapp_number":"+355691234567","adults":2}`

	existingID := uuid.New()
	now := time.Now()
	existingRows := sqlmock.NewRows([]string{
		"id", "package_id", "user_id", "idempotency_key", "booking_date", "guest_full_name",
		"whatsapp_number", "adults", "children", "infants", "traveler_count", "note", "status",
		"device_info", "created_at", "updated_at",
	}).AddRow(existingID, packageID, nil, key, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		"Arben Hoxha", "+355691234567", 2, 0, 0, 2, nil, models.BookingStatusPendingContact,
		[]byte(nil), now, now)

	mock.ExpectQuery(`FROM packages p\s+JOIN destinations`).
		WillReturnRows(handlerPackageRows(packageID))
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM bookings WHERE idempotency_key = \$1`).
		WithArgs(key).
		WillReturnRows(existingRows)
	mock.ExpectRollback()

	w := postBooking(t, router, body, key)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), existingID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateEndpoint_CapacityConflictIs409(t *testing.T) {
	router, mock := newBookingTestServer(t)

	packageID := uuid.New()
	body := `{"package_id":"` + packageID.String() + `","booking_date":"2026-09-15",` +
		`"full_name":"Arben Hoxha","whatsapp_number":"+355691234567","adults":4}`

	mock.ExpectQuery(`FROM packages p\s+JOIN destinations`).
		WillReturnRows(handlerPackageRows(packageID))
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(handlerAvailabilityRows(packageID, 2))
	mock.ExpectRollback()

	w := postBooking(t, router, body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient capacity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateEndpoint_BadPhoneIs400(t *testing.T) {
	router, _ := newBookingTestServer(t)

	body := `{"package_id":"` + uuid.New().String() + `","booking_date":"2026-09-15",` +
		`"full_name":"Arben Hoxha","whatsapp_number":"12345","adults":1}`

	w := postBooking(t, router, body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingCreateEndpoint_MissingBodyFieldsIs400(t *testing.T) {
	router, _ := newBookingTestServer(t)

	w := postBooking(t, router, `{"package_id":"x"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
