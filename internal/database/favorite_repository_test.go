package database

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albatrip/travel-backend/internal/apperrors"
)

func TestFavoriteToggle_RemovesExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	userID, packageID := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(userID, packageID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	favorited, err := repo.Toggle(context.Background(), userID, packageID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteToggle_AddsWhenMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	userID, packageID := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM favorites`).
		WithArgs(userID, packageID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO favorites`).
		WithArgs(userID, packageID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	favorited, err := repo.Toggle(context.Background(), userID, packageID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteToggle_UnknownPackage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)

	userID, packageID := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM favorites`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO favorites`).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Toggle(context.Background(), userID, packageID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
