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

// HyperlinkStore persists the inline links of generated articles.
type HyperlinkStore struct {
	db *sql.DB
}

// NewHyperlinkStore creates a new HyperlinkStore with the given database connection.
func NewHyperlinkStore(db *sql.DB) *HyperlinkStore {
	return &HyperlinkStore{db: db}
}

// ListByBlog returns a blog's hyperlinks ordered by character offset.
func (s *HyperlinkStore) ListByBlog(blogID uuid.UUID) ([]models.Hyperlink, error) {
	rows, err := s.db.Query(`
		SELECT id, blog_id, text, target_type, target_id, url, char_offset, created_at
		FROM article_hyperlinks
		WHERE blog_id = $1
		ORDER BY char_offset ASC
	`, blogID)
	if err != nil {
		return nil, fmt.Errorf("list hyperlinks: %w", err)
	}
	defer rows.Close()

	var items []models.Hyperlink
	for rows.Next() {
		var h models.Hyperlink
		if err := rows.Scan(
			&h.ID, &h.BlogID, &h.Text, &h.TargetType, &h.TargetID,
			&h.URL, &h.Offset, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan hyperlink: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

// ReplaceForBlog deletes a blog's existing hyperlink rows and inserts the
// new set. Old rows are replaced wholesale on regeneration.
func (s *HyperlinkStore) ReplaceForBlog(blogID uuid.UUID, links []models.Hyperlink) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replace hyperlinks begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM article_hyperlinks WHERE blog_id = $1`, blogID); err != nil {
		return fmt.Errorf("replace hyperlinks delete: %w", err)
	}

	for _, h := range links {
		if _, err := tx.Exec(`
			INSERT INTO article_hyperlinks (blog_id, text, target_type, target_id, url, char_offset)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, blogID, h.Text, h.TargetType, h.TargetID, h.URL, h.Offset); err != nil {
			return fmt.Errorf("insert hyperlink: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace hyperlinks commit: %w", err)
	}
	return nil
}
