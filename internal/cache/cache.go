package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/albatrip/travel-backend/internal/models"
)

const (
	packageKeyPrefix    = "package:"
	destinationsListKey = "destinations:active"
)

// Client is a read-through cache for package and destination projections.
// A nil *Client is a no-op, so callers never need to branch on whether
// caching is configured.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis cache client
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}

// GetPackage returns the cached package, or (nil, nil) on a miss.
func (c *Client) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.rdb.Get(ctx, packageKeyPrefix+id.String()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package from cache: %w", err)
	}

	var pkg models.Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to decode cached package: %w", err)
	}
	return &pkg, nil
}

// SetPackage stores a package projection
func (c *Client) SetPackage(ctx context.Context, pkg *models.Package) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("failed to encode package for cache: %w", err)
	}
	return c.rdb.Set(ctx, packageKeyPrefix+pkg.ID.String(), data, c.ttl).Err()
}

// InvalidatePackage drops the cached projection after an admin write
func (c *Client) InvalidatePackage(ctx context.Context, id uuid.UUID) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, packageKeyPrefix+id.String()).Err()
}

// GetDestinations returns the cached active-destinations listing, or
// (nil, nil) on a miss.
func (c *Client) GetDestinations(ctx context.Context) ([]models.Destination, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.rdb.Get(ctx, destinationsListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read destinations from cache: %w", err)
	}

	var destinations []models.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return nil, fmt.Errorf("failed to decode cached destinations: %w", err)
	}
	return destinations, nil
}

// SetDestinations stores the active-destinations listing
func (c *Client) SetDestinations(ctx context.Context, destinations []models.Destination) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(destinations)
	if err != nil {
		return fmt.Errorf("failed to encode destinations for cache: %w", err)
	}
	return c.rdb.Set(ctx, destinationsListKey, data, c.ttl).Err()
}

// InvalidateDestinations drops the listing after an admin write
func (c *Client) InvalidateDestinations(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, destinationsListKey).Err()
}
