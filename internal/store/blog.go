// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

const blogColumns = `id, title, slug, content, meta_title, meta_description,
       meta_keywords, category_id, product_id, auto_generated, status,
       published_at, created_at, updated_at`

// BlogStore handles all blog-related database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

func scanBlog(row interface{ Scan(...any) error }) (*models.Blog, error) {
	b := &models.Blog{}
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.MetaTitle, &b.MetaDescription,
		&b.MetaKeywords, &b.CategoryID, &b.ProductID, &b.AutoGenerated,
		&b.Status, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List returns all blogs ordered by creation date descending.
func (s *BlogStore) List() ([]models.Blog, error) {
	rows, err := s.db.Query(
		`SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// FindByID retrieves a blog by its UUID. Returns nil if not found.
func (s *BlogStore) FindByID(id uuid.UUID) (*models.Blog, error) {
	b, err := scanBlog(s.db.QueryRow(
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by id: %w", err)
	}
	return b, nil
}

// SlugExists reports whether any blog already uses the given slug.
func (s *BlogStore) SlugExists(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check blog slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new blog and returns it with the generated ID.
func (s *BlogStore) Create(b *models.Blog) (*models.Blog, error) {
	if b.Status == models.BlogStatusPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}

	created, err := scanBlog(s.db.QueryRow(`
		INSERT INTO blogs (title, slug, content, meta_title, meta_description,
		                   meta_keywords, category_id, product_id, auto_generated,
		                   status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+blogColumns,
		b.Title, b.Slug, b.Content, b.MetaTitle, b.MetaDescription,
		b.MetaKeywords, b.CategoryID, b.ProductID, b.AutoGenerated,
		b.Status, b.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return created, nil
}

// Update modifies an existing blog.
func (s *BlogStore) Update(b *models.Blog) error {
	if b.Status == models.BlogStatusPublished && b.PublishedAt == nil {
		now := time.Now()
		b.PublishedAt = &now
	}

	_, err := s.db.Exec(`
		UPDATE blogs SET
			title = $1, slug = $2, content = $3, meta_title = $4,
			meta_description = $5, meta_keywords = $6, category_id = $7,
			status = $8, published_at = $9, updated_at = NOW()
		WHERE id = $10
	`, b.Title, b.Slug, b.Content, b.MetaTitle, b.MetaDescription,
		b.MetaKeywords, b.CategoryID, b.Status, b.PublishedAt, b.ID)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return nil
}

// Delete removes a blog by ID. Its hyperlink rows cascade.
func (s *BlogStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return nil
}

// ContainsSnippet reports whether any existing blog's content contains the
// literal snippet. Feeds the validator's naive duplicate-content check.
func (s *BlogStore) ContainsSnippet(snippet string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM blogs WHERE content LIKE '%' || $1 || '%')`,
		snippet).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check duplicate snippet: %w", err)
	}
	return exists, nil
}

// CountAutoGenerated returns the total number of auto-generated blogs.
func (s *BlogStore) CountAutoGenerated() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM blogs WHERE auto_generated`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count auto blogs: %w", err)
	}
	return count, nil
}

// CountByProduct returns the number of blogs generated for a product.
func (s *BlogStore) CountByProduct(productID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM blogs WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blogs by product: %w", err)
	}
	return count, nil
}
