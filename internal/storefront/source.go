// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storefront reads product data from the external shop database.
// It is strictly read-only: the sync job owns all writes on the local side.
package storefront

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"nutripress/internal/models"
)

// Source fetches the active product catalog from the storefront schema.
// The sync service depends on this interface so tests can inject a stub.
type Source interface {
	FetchActiveProducts(ctx context.Context) ([]models.ExternalProduct, error)
}

// Client is the production Source backed by the storefront database.
type Client struct {
	db *sql.DB
}

// Connect opens a read-only connection pool to the storefront database.
func Connect(dsn string) (*Client, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("storefront open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storefront ping: %w", err)
	}

	slog.Info("storefront database connected")
	return &Client{db: db}, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// FetchActiveProducts pulls every sellable product in one joined query.
// Rating, review, view, and stock figures come along to feed the
// popularity score; they are aggregated here rather than post-processed
// so the sync job holds only one row set in memory.
func (c *Client) FetchActiveProducts(ctx context.Context) ([]models.ExternalProduct, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT p.id,
		       p.name,
		       COALESCE(c.name, '') AS category,
		       COALESCE(p.description, '') AS description,
		       p.price,
		       p.sale_price,
		       NULLIF(p.tags, '') AS tags,
		       NULLIF(i.url, '') AS image_url,
		       COALESCE(AVG(r.rating), 0) AS rating,
		       COUNT(DISTINCT r.id) AS review_count,
		       COALESCE(MAX(st.view_count), 0) AS view_count,
		       COALESCE(MAX(inv.quantity), 0) > 0 AS in_stock
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN product_images i ON i.product_id = p.id AND i.is_primary
		LEFT JOIN reviews r ON r.product_id = p.id AND r.approved
		LEFT JOIN product_stats st ON st.product_id = p.id
		LEFT JOIN inventory inv ON inv.product_id = p.id
		WHERE p.status = 'active'
		GROUP BY p.id, p.name, c.name, p.description, p.price, p.sale_price,
		         p.tags, i.url
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("fetch storefront products: %w", err)
	}
	defer rows.Close()

	var items []models.ExternalProduct
	for rows.Next() {
		var p models.ExternalProduct
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.SalePrice,
			&p.Tags, &p.ImageURL, &p.Rating, &p.ReviewCount, &p.ViewCount,
			&p.InStock,
		); err != nil {
			return nil, fmt.Errorf("scan storefront product: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
