// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogStatus represents the publishing state of a blog article.
type BlogStatus string

const (
	BlogStatusDraft     BlogStatus = "draft"
	BlogStatusPublished BlogStatus = "published"
)

// Blog is an article in the blogs table. Auto-generated articles carry
// AutoGenerated=true and link back to their source product.
type Blog struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	MetaKeywords    *string    `json:"meta_keywords,omitempty"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	AutoGenerated   bool       `json:"auto_generated"`
	Status          BlogStatus `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsPublished returns true if the blog is in published status.
func (b *Blog) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// ProductBlogStatus tracks the outcome of one article generation slot.
type ProductBlogStatus string

const (
	ProductBlogStatusCompleted ProductBlogStatus = "completed"
	ProductBlogStatusFailed    ProductBlogStatus = "failed"
)

// ProductBlog joins a generated blog to its product and source title and
// records the per-article quality scores. One row per article title,
// upserted on regeneration.
type ProductBlog struct {
	ID              uuid.UUID         `json:"id"`
	ProductID       uuid.UUID         `json:"product_id"`
	ArticleTitleID  uuid.UUID         `json:"article_title_id"`
	BlogID          *uuid.UUID        `json:"blog_id,omitempty"`
	ValidationScore int               `json:"validation_score"`
	SEOScore        int               `json:"seo_score"`
	Status          ProductBlogStatus `json:"status"`
	GeneratedAt     time.Time         `json:"generated_at"`
}
