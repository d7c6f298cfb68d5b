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

// SyncLogStore appends and reads product sync audit rows.
type SyncLogStore struct {
	db *sql.DB
}

// NewSyncLogStore creates a new SyncLogStore with the given database connection.
func NewSyncLogStore(db *sql.DB) *SyncLogStore {
	return &SyncLogStore{db: db}
}

// Start inserts the audit row for a run that just began and returns its ID.
func (s *SyncLogStore) Start() (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO product_sync_logs (status) VALUES ('error')
		RETURNING id
	`).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("start sync log: %w", err)
	}
	return id, nil
}

// Finish completes the audit row with final counts and status.
func (s *SyncLogStore) Finish(id uuid.UUID, log *models.SyncLog) error {
	_, err := s.db.Exec(`
		UPDATE product_sync_logs SET
			status = $1, total = $2, created = $3, updated = $4, deleted = $5,
			failed = $6, duration_ms = $7, errors = $8, finished_at = NOW()
		WHERE id = $9
	`, log.Status, log.Total, log.Created, log.Updated, log.Deleted,
		log.Failed, log.DurationMS, log.Errors, id)
	if err != nil {
		return fmt.Errorf("finish sync log: %w", err)
	}
	return nil
}

// List returns the most recent sync runs, newest first.
func (s *SyncLogStore) List(limit int) ([]models.SyncLog, error) {
	rows, err := s.db.Query(`
		SELECT id, status, total, created, updated, deleted, failed,
		       duration_ms, errors, started_at, finished_at
		FROM product_sync_logs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	defer rows.Close()

	var items []models.SyncLog
	for rows.Next() {
		var l models.SyncLog
		if err := rows.Scan(
			&l.ID, &l.Status, &l.Total, &l.Created, &l.Updated, &l.Deleted,
			&l.Failed, &l.DurationMS, &l.Errors, &l.StartedAt, &l.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
