// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the plain data structures shared between the
// stores, the generation pipeline, and the HTTP handlers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus is the lifecycle tag on a locally mirrored product row.
// Rows are never hard-deleted; the sync job flips them to deleted when
// the external product vanishes from the storefront.
type SyncStatus string

const (
	SyncStatusActive  SyncStatus = "active"
	SyncStatusDeleted SyncStatus = "deleted"
)

// Product is a locally mirrored storefront product (the product_index
// table). It carries the catalog fields the generation pipeline reads
// plus the sync bookkeeping columns maintained by the sync job.
type Product struct {
	ID              uuid.UUID  `json:"id"`
	ExternalID      int64      `json:"external_id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	SalePrice       *float64   `json:"sale_price,omitempty"`
	Tags            *string    `json:"tags,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	PopularityScore int        `json:"popularity_score"`
	SyncStatus      SyncStatus `json:"sync_status"`
	LastSyncedAt    time.Time  `json:"last_synced_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsActive reports whether the product is still present in the storefront.
func (p *Product) IsActive() bool {
	return p.SyncStatus == SyncStatusActive
}

// ExternalProduct is one row of the joined storefront query, before it is
// mapped into a Product. Rating/review/view numbers only feed the
// popularity score and are not persisted individually.
type ExternalProduct struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Price       float64
	SalePrice   *float64
	Tags        *string
	ImageURL    *string
	Rating      float64
	ReviewCount int
	ViewCount   int
	InStock     bool
}
