// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package autoblog

import (
	"fmt"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// ProductStatus is the per-product dashboard view: title progress and
// completed article count. Recomputed on every call.
type ProductStatus struct {
	ProductID         uuid.UUID             `json:"product_id"`
	TotalTitles       int                   `json:"total_titles"`
	PendingTitles     int                   `json:"pending_titles"`
	CompletedTitles   int                   `json:"completed_titles"`
	FailedTitles      int                   `json:"failed_titles"`
	CompletedArticles int                   `json:"completed_articles"`
	Titles            []models.ArticleTitle `json:"titles"`
}

func (s *Service) ProductStatus(productID uuid.UUID) (*ProductStatus, error) {
	titles, err := s.titles.ListByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	st := &ProductStatus{ProductID: productID, TotalTitles: len(titles), Titles: titles}
	for _, t := range titles {
		switch t.Status {
		case models.TitleStatusCompleted:
			st.CompletedTitles++
		case models.TitleStatusFailed:
			st.FailedTitles++
		default:
			st.PendingTitles++
		}
	}

	completed, err := s.stats.ProductBlogs.CountCompletedByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	st.CompletedArticles = completed
	return st, nil
}

// Statistics is the global dashboard view.
type Statistics struct {
	ActiveProducts     int                        `json:"active_products"`
	TitlesByStatus     map[models.TitleStatus]int `json:"titles_by_status"`
	AutoGeneratedBlogs int                        `json:"auto_generated_blogs"`
}

func (s *Service) Statistics() (*Statistics, error) {
	products, err := s.stats.Products.CountActive()
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	titles, err := s.stats.Titles.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("count titles: %w", err)
	}
	blogs, err := s.stats.Blogs.CountAutoGenerated()
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	return &Statistics{
		ActiveProducts:     products,
		TitlesByStatus:     titles,
		AutoGeneratedBlogs: blogs,
	}, nil
}
