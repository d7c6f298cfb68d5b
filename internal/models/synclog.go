// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SyncRunStatus is the overall outcome of one product sync run.
type SyncRunStatus string

const (
	SyncRunSuccess SyncRunStatus = "success"
	SyncRunPartial SyncRunStatus = "partial"
	SyncRunError   SyncRunStatus = "error"
)

// SyncLog is one append-only audit row per product sync run.
type SyncLog struct {
	ID         uuid.UUID     `json:"id"`
	Status     SyncRunStatus `json:"status"`
	Total      int           `json:"total"`
	Created    int           `json:"created"`
	Updated    int           `json:"updated"`
	Deleted    int           `json:"deleted"`
	Failed     int           `json:"failed"`
	DurationMS int64         `json:"duration_ms"`
	Errors     *string       `json:"errors,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
}
