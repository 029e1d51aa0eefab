package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/internal/apperrors"
)

func TestAvailabilityUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	packageID := uuid.New()
	availID := uuid.New()
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO package_availability`).
		WithArgs(packageID, date, 10, 10, true).
		WillReturnRows(availabilityRows(availID, packageID, date, 10, 10))

	avail, err := repo.Upsert(context.Background(), packageID, date, 10, 10, true)
	require.NoError(t, err)
	assert.Equal(t, availID, avail.ID)
	assert.Equal(t, 10, avail.Capacity)
	assert.Equal(t, 10, avail.Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityUpsert_UnknownPackage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery(`INSERT INTO package_availability`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Upsert(context.Background(), uuid.New(), time.Now(), 10, 10, true)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityList_ExcludesClosedByDefault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	packageID := uuid.New()
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`AND is_open = TRUE\s+ORDER BY available_date ASC`).
		WithArgs(packageID).
		WillReturnRows(availabilityRows(uuid.New(), packageID, date, 8, 5))

	rows, err := repo.List(context.Background(), packageID, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Remaining)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityDelete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM package_availability`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery(`FROM package_availability`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}
