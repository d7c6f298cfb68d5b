// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// TitleStore handles article title batches. Titles are regenerated
// wholesale: the old batch for a product is deleted, never merged.
type TitleStore struct {
	db *sql.DB
}

// NewTitleStore creates a new TitleStore with the given database connection.
func NewTitleStore(db *sql.DB) *TitleStore {
	return &TitleStore{db: db}
}

// ListByProduct returns a product's titles ordered by ordinal.
func (s *TitleStore) ListByProduct(productID uuid.UUID) ([]models.ArticleTitle, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, title, slug, ordinal, status, seo_score, created_at
		FROM article_titles
		WHERE product_id = $1
		ORDER BY ordinal ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	defer rows.Close()

	var items []models.ArticleTitle
	for rows.Next() {
		var t models.ArticleTitle
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.Title, &t.Slug, &t.Ordinal,
			&t.Status, &t.SEOScore, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// FindByID retrieves a title by its UUID. Returns nil if not found.
func (s *TitleStore) FindByID(id uuid.UUID) (*models.ArticleTitle, error) {
	t := &models.ArticleTitle{}
	err := s.db.QueryRow(`
		SELECT id, product_id, title, slug, ordinal, status, seo_score, created_at
		FROM article_titles WHERE id = $1
	`, id).Scan(
		&t.ID, &t.ProductID, &t.Title, &t.Slug, &t.Ordinal,
		&t.Status, &t.SEOScore, &t.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find title by id: %w", err)
	}
	return t, nil
}

// ReplaceForProduct deletes all existing titles for the product and inserts
// the new batch in one transaction, assigning sequential ordinals starting
// at 1. Returns the inserted rows.
func (s *TitleStore) ReplaceForProduct(productID uuid.UUID, titles []models.ArticleTitle) ([]models.ArticleTitle, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("replace titles begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM article_titles WHERE product_id = $1`, productID); err != nil {
		return nil, fmt.Errorf("replace titles delete: %w", err)
	}

	inserted := make([]models.ArticleTitle, 0, len(titles))
	for i, t := range titles {
		var row models.ArticleTitle
		err := tx.QueryRow(`
			INSERT INTO article_titles (product_id, title, slug, ordinal, status, seo_score)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, product_id, title, slug, ordinal, status, seo_score, created_at
		`, productID, t.Title, t.Slug, i+1, models.TitleStatusPending, t.SEOScore,
		).Scan(
			&row.ID, &row.ProductID, &row.Title, &row.Slug, &row.Ordinal,
			&row.Status, &row.SEOScore, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert title %d: %w", i+1, err)
		}
		inserted = append(inserted, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace titles commit: %w", err)
	}
	return inserted, nil
}

// UpdateStatus flips a title's generation status.
func (s *TitleStore) UpdateStatus(id uuid.UUID, status models.TitleStatus) error {
	_, err := s.db.Exec(
		`UPDATE article_titles SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update title status: %w", err)
	}
	return nil
}

// CountByProduct returns the number of titles for a product.
func (s *TitleStore) CountByProduct(productID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM article_titles WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count titles: %w", err)
	}
	return count, nil
}

// CountByStatus returns title counts grouped by status across all products.
func (s *TitleStore) CountByStatus() (map[models.TitleStatus]int, error) {
	rows, err := s.db.Query(
		`SELECT status, COUNT(*) FROM article_titles GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count titles by status: %w", err)
	}
	defer rows.Close()

	out := make(map[models.TitleStatus]int)
	for rows.Next() {
		var status models.TitleStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan title count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
