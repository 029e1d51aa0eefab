package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/database"
	"github.com/albatrip/travel-backend/internal/models"
)

// ContentService reads and replaces versioned site content documents
type ContentService struct {
	content *database.ContentRepository
}

// NewContentService creates a new ContentService
func NewContentService(content *database.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// Get returns the document stored under key
func (s *ContentService) Get(ctx context.Context, key string) (*models.ContentDocument, error) {
	return s.content.Get(ctx, key)
}

// Save replaces the document stored under key, bumping its version
func (s *ContentService) Save(ctx context.Context, key string, body json.RawMessage, updatedBy uuid.UUID) (*models.ContentDocument, error) {
	if !json.Valid(body) {
		return nil, apperrors.Validation("body must be a valid JSON document")
	}
	return s.content.Save(ctx, key, body, updatedBy)
}
