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

// ProductBlogStore handles the join rows linking generated blogs to their
// product and source title, with per-article quality scores.
type ProductBlogStore struct {
	db *sql.DB
}

// NewProductBlogStore creates a new ProductBlogStore.
func NewProductBlogStore(db *sql.DB) *ProductBlogStore {
	return &ProductBlogStore{db: db}
}

// Upsert inserts or replaces the join row for an article title.
func (s *ProductBlogStore) Upsert(pb *models.ProductBlog) error {
	_, err := s.db.Exec(`
		INSERT INTO product_blogs
			(product_id, article_title_id, blog_id, validation_score, seo_score, status, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (article_title_id) DO UPDATE SET
			blog_id = EXCLUDED.blog_id,
			validation_score = EXCLUDED.validation_score,
			seo_score = EXCLUDED.seo_score,
			status = EXCLUDED.status,
			generated_at = NOW()
	`, pb.ProductID, pb.ArticleTitleID, pb.BlogID,
		pb.ValidationScore, pb.SEOScore, pb.Status)
	if err != nil {
		return fmt.Errorf("upsert product blog: %w", err)
	}
	return nil
}

// ListByProduct returns the join rows for a product, newest first.
func (s *ProductBlogStore) ListByProduct(productID uuid.UUID) ([]models.ProductBlog, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, article_title_id, blog_id,
		       validation_score, seo_score, status, generated_at
		FROM product_blogs
		WHERE product_id = $1
		ORDER BY generated_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product blogs: %w", err)
	}
	defer rows.Close()

	var items []models.ProductBlog
	for rows.Next() {
		var pb models.ProductBlog
		if err := rows.Scan(
			&pb.ID, &pb.ProductID, &pb.ArticleTitleID, &pb.BlogID,
			&pb.ValidationScore, &pb.SEOScore, &pb.Status, &pb.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product blog: %w", err)
		}
		items = append(items, pb)
	}
	return items, rows.Err()
}

// CountCompletedByProduct returns how many articles completed for a product.
func (s *ProductBlogStore) CountCompletedByProduct(productID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM product_blogs
		WHERE product_id = $1 AND status = 'completed'
	`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count completed product blogs: %w", err)
	}
	return count, nil
}
