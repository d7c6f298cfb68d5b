// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// LinkableItem is a product or category eligible to be hyperlinked from
// generated article text. The hyperlink service works on these flattened
// records rather than full rows.
type LinkableItem struct {
	ID   uuid.UUID      `json:"id"`
	Type LinkTargetType `json:"type"`
	Name string         `json:"name"`
	URL  string         `json:"url"`
}
