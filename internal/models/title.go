// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TitleStatus marks whether an article has been generated for a title yet.
type TitleStatus string

const (
	TitleStatusPending   TitleStatus = "pending"
	TitleStatusCompleted TitleStatus = "completed"
	TitleStatusFailed    TitleStatus = "failed"
)

// ArticleTitle is one candidate article title for a product. Titles are
// generated in batches of up to ten and replaced wholesale on regeneration.
type ArticleTitle struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"product_id"`
	Title     string      `json:"title"`
	Slug      string      `json:"slug"`
	Ordinal   int         `json:"ordinal"`
	Status    TitleStatus `json:"status"`
	SEOScore  int         `json:"seo_score"`
	CreatedAt time.Time   `json:"created_at"`
}
