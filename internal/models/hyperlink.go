// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// LinkTargetType distinguishes what a hyperlink points at.
type LinkTargetType string

const (
	LinkTargetProduct  LinkTargetType = "product"
	LinkTargetCategory LinkTargetType = "category"
)

// Hyperlink is a persisted inline link inside a generated article. Rows are
// keyed to a blog and replaced wholesale when the article is regenerated.
type Hyperlink struct {
	ID         uuid.UUID      `json:"id"`
	BlogID     uuid.UUID      `json:"blog_id"`
	Text       string         `json:"text"`
	TargetType LinkTargetType `json:"target_type"`
	TargetID   uuid.UUID      `json:"target_id"`
	URL        string         `json:"url"`
	Offset     int            `json:"offset"`
	CreatedAt  time.Time      `json:"created_at"`
}
