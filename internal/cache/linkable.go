// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// linkable.go caches the hyperlink service's candidate catalog (active
// products and categories) in Redis. The catalog changes only on sync or
// category edits, so a short TTL keeps detection cheap without explicit
// invalidation plumbing.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"nutripress/internal/models"
)

const (
	linkableKey = "linkable:catalog"

	// DefaultLinkableTTL is how long the linkable catalog stays cached.
	DefaultLinkableTTL = 5 * time.Minute
)

// LinkableCache stores the flattened linkable catalog in Redis. All methods
// degrade gracefully: a Redis failure is logged and treated as a miss, so
// the hyperlink service falls back to the database.
type LinkableCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLinkableCache creates a linkable-catalog cache backed by the given client.
func NewLinkableCache(client *redis.Client, ttl time.Duration) *LinkableCache {
	if ttl == 0 {
		ttl = DefaultLinkableTTL
	}
	return &LinkableCache{client: client, ttl: ttl}
}

// Get returns the cached catalog, or (nil, false) on miss or error.
func (c *LinkableCache) Get(ctx context.Context) ([]models.LinkableItem, bool) {
	payload, err := c.client.Get(ctx, linkableKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("linkable cache get error", "error", err)
		return nil, false
	}

	var items []models.LinkableItem
	if err := json.Unmarshal(payload, &items); err != nil {
		slog.Warn("linkable cache unmarshal error", "error", err)
		return nil, false
	}
	return items, true
}

// Set stores the catalog with the configured TTL.
func (c *LinkableCache) Set(ctx context.Context, items []models.LinkableItem) {
	payload, err := json.Marshal(items)
	if err != nil {
		slog.Warn("linkable cache marshal error", "error", err)
		return
	}
	if err := c.client.Set(ctx, linkableKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("linkable cache set error", "error", err)
	}
}

// Invalidate drops the cached catalog. Called after a product sync run.
func (c *LinkableCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, linkableKey).Err(); err != nil {
		slog.Warn("linkable cache invalidate error", "error", err)
	}
	slog.Debug("linkable cache invalidated")
}
