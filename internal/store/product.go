// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer. Each store wraps one
// table (or a tight pair of tables) and exposes typed query methods over
// plain database/sql.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// productColumns is the scan list shared by all product queries.
const productColumns = `id, external_id, name, slug, category, description,
       price, sale_price, tags, image_url, popularity_score,
       sync_status, last_synced_at, created_at, updated_at`

// ProductStore handles the locally mirrored product index.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID, &p.ExternalID, &p.Name, &p.Slug, &p.Category, &p.Description,
		&p.Price, &p.SalePrice, &p.Tags, &p.ImageURL, &p.PopularityScore,
		&p.SyncStatus, &p.LastSyncedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a product by its UUID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	p, err := scanProduct(s.db.QueryRow(
		`SELECT `+productColumns+` FROM product_index WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// ListActive returns all active products ordered by popularity descending.
func (s *ProductStore) ListActive() ([]models.Product, error) {
	rows, err := s.db.Query(
		`SELECT ` + productColumns + ` FROM product_index
		 WHERE sync_status = 'active'
		 ORDER BY popularity_score DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListActiveLimit returns up to limit active products by popularity.
// Used for embedding linkable candidates into generation prompts.
func (s *ProductStore) ListActiveLimit(limit int) ([]models.Product, error) {
	rows, err := s.db.Query(
		`SELECT `+productColumns+` FROM product_index
		 WHERE sync_status = 'active'
		 ORDER BY popularity_score DESC, name ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// UpsertTx inserts or updates a product by external ID inside the given
// transaction. Returns true when a new row was created. An upsert always
// reactivates the row and stamps last_synced_at.
func (s *ProductStore) UpsertTx(tx *sql.Tx, p *models.Product) (bool, error) {
	var created bool
	err := tx.QueryRow(`
		INSERT INTO product_index
			(external_id, name, slug, category, description, price, sale_price,
			 tags, image_url, popularity_score, sync_status, last_synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'active', NOW())
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			sale_price = EXCLUDED.sale_price,
			tags = EXCLUDED.tags,
			image_url = EXCLUDED.image_url,
			popularity_score = EXCLUDED.popularity_score,
			sync_status = 'active',
			last_synced_at = NOW(),
			updated_at = NOW()
		RETURNING (xmax = 0)
	`, p.ExternalID, p.Name, p.Slug, p.Category, p.Description, p.Price,
		p.SalePrice, p.Tags, p.ImageURL, p.PopularityScore,
	).Scan(&created)
	if err != nil {
		return false, fmt.Errorf("upsert product %d: %w", p.ExternalID, err)
	}
	return created, nil
}

// MarkDeletedExcept soft-deletes every active product whose external ID is
// not in the keep list. Returns the number of rows flipped to deleted.
func (s *ProductStore) MarkDeletedExcept(keep []int64) (int, error) {
	// An empty keep list means the storefront returned nothing; refusing to
	// mass-delete here keeps a broken source query from wiping the index.
	if len(keep) == 0 {
		return 0, nil
	}

	res, err := s.db.Exec(`
		UPDATE product_index
		SET sync_status = 'deleted', updated_at = NOW()
		WHERE sync_status = 'active' AND NOT (external_id = ANY($1))
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("mark deleted products: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// CountActive returns the number of active products.
func (s *ProductStore) CountActive() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM product_index WHERE sync_status = 'active'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return count, nil
}
