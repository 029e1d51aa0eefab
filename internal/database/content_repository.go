package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/albatrip/travel-backend/internal/apperrors"
	"github.com/albatrip/travel-backend/internal/models"
)

// ContentRepository is the typed accessor over the schema-free site content
// documents (services page, support page, ...).
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// Get retrieves a content document by key
func (r *ContentRepository) Get(ctx context.Context, key string) (*models.ContentDocument, error) {
	var doc models.ContentDocument
	err := r.db.GetContext(ctx, &doc, `
		SELECT content_key, body, version, updated_by, updated_at
		FROM site_content
		WHERE content_key = $1`, key)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("content not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &doc, nil
}

// Save replaces the document body under the given key, bumping its version.
// Creation starts at version 1.
func (r *ContentRepository) Save(ctx context.Context, key string, body json.RawMessage, updatedBy uuid.UUID) (*models.ContentDocument, error) {
	var doc models.ContentDocument
	err := r.db.GetContext(ctx, &doc, `
		INSERT INTO site_content (content_key, body, version, updated_by)
		VALUES ($1, $2, 1, $3)
		ON CONFLICT (content_key)
		DO UPDATE SET body = EXCLUDED.body,
		              version = site_content.version + 1,
		              updated_by = EXCLUDED.updated_by,
		              updated_at = NOW()
		RETURNING content_key, body, version, updated_by, updated_at`,
		key, body, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}
	return &doc, nil
}
