// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sync mirrors the external storefront catalog into the local
// product index: fetch, score, batched upserts, soft-delete of vanished
// rows, and an audit log row per run.
package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"nutripress/internal/models"
	"nutripress/internal/slug"
	"nutripress/internal/storefront"
)

// ErrSyncRunning is returned when a run is requested while another is in
// flight. The guard is process-local: it does not protect against a second
// instance of the application.
var ErrSyncRunning = errors.New("sync is already running")

// CatalogInvalidator is notified after a successful run so cached linkable
// catalogs get refreshed. Satisfied by hyperlink.Service.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

// ProductIndex is the slice of the product store the sync job writes
// through. Satisfied by store.ProductStore.
type ProductIndex interface {
	UpsertTx(tx *sql.Tx, p *models.Product) (bool, error)
	MarkDeletedExcept(keep []int64) (int, error)
}

// RunLog records sync audit rows. Satisfied by store.SyncLogStore.
type RunLog interface {
	Start() (uuid.UUID, error)
	Finish(id uuid.UUID, l *models.SyncLog) error
}

// Progress is a point-in-time snapshot of the current (or last) run,
// polled by the admin UI.
type Progress struct {
	Running   bool      `json:"running"`
	Total     int       `json:"total"`
	Processed int       `json:"processed"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Deleted   int       `json:"deleted"`
	Failed    int       `json:"failed"`
	Batches   int       `json:"batches"`
	StartedAt time.Time `json:"started_at"`
	ElapsedMS int64     `json:"elapsed_ms"`
}

// Service runs catalog syncs. All mutable run state lives on the service
// behind its mutex, so tests construct isolated instances.
type Service struct {
	source     storefront.Source
	db         *sql.DB
	products   ProductIndex
	logs       RunLog
	invalidate CatalogInvalidator
	batchSize  int

	mu       stdsync.Mutex
	running  bool
	progress Progress
}

func NewService(source storefront.Source, db *sql.DB, products ProductIndex, logs RunLog, invalidate CatalogInvalidator, batchSize int) *Service {
	if batchSize < 1 {
		batchSize = 50
	}
	return &Service{
		source:     source,
		db:         db,
		products:   products,
		logs:       logs,
		invalidate: invalidate,
		batchSize:  batchSize,
	}
}

// Progress returns a snapshot of the current run state.
func (s *Service) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress
	if p.Running {
		p.ElapsedMS = time.Since(p.StartedAt).Milliseconds()
	}
	return p
}

// SyncAll runs one full catalog sync. The running guard rejects a second
// concurrent call before any query is issued. Per-product failures are
// recorded and skipped; only fetch-level failures abort the run.
func (s *Service) SyncAll(ctx context.Context) (*models.SyncLog, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrSyncRunning
	}
	s.running = true
	s.progress = Progress{Running: true, StartedAt: time.Now()}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.progress.Running = false
		s.progress.ElapsedMS = time.Since(s.progress.StartedAt).Milliseconds()
		s.mu.Unlock()
	}()

	logID, err := s.logs.Start()
	if err != nil {
		return nil, fmt.Errorf("start sync log: %w", err)
	}

	started := time.Now()
	result, err := s.run(ctx)
	result.DurationMS = time.Since(started).Milliseconds()
	if err != nil {
		msg := err.Error()
		result.Status = models.SyncRunError
		result.Errors = &msg
	}

	if logErr := s.logs.Finish(logID, result); logErr != nil {
		slog.Error("finish sync log", "error", logErr)
	}
	if err != nil {
		return nil, err
	}

	if s.invalidate != nil {
		s.invalidate.InvalidateCatalog(ctx)
	}

	slog.Info("product sync finished",
		"status", result.Status,
		"total", result.Total,
		"created", result.Created,
		"updated", result.Updated,
		"deleted", result.Deleted,
		"failed", result.Failed,
		"duration_ms", result.DurationMS,
	)
	result.ID = logID
	return result, nil
}

func (s *Service) run(ctx context.Context) (*models.SyncLog, error) {
	result := &models.SyncLog{}

	rows, err := s.source.FetchActiveProducts(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch storefront products: %w", err)
	}

	result.Total = len(rows)
	s.setProgress(func(p *Progress) { p.Total = len(rows) })

	// The keep list comes from the fetch itself, not from upsert outcomes:
	// a product that failed to write this run is still in the storefront and
	// must not be swept as vanished.
	keep := make([]int64, 0, len(rows))
	for i := range rows {
		keep = append(keep, rows[i].ID)
	}

	var errs []string

	for start := 0; start < len(rows); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		created, updated, batchErrs := s.upsertBatch(rows[start:end])
		result.Created += created
		result.Updated += updated
		result.Failed += len(batchErrs)
		errs = append(errs, batchErrs...)

		s.setProgress(func(p *Progress) {
			p.Processed += end - start
			p.Created = result.Created
			p.Updated = result.Updated
			p.Failed = result.Failed
			p.Batches++
		})
	}

	deleted, err := s.products.MarkDeletedExcept(keep)
	if err != nil {
		return result, fmt.Errorf("mark vanished products: %w", err)
	}
	result.Deleted = deleted
	s.setProgress(func(p *Progress) { p.Deleted = deleted })

	switch {
	case result.Failed == 0:
		result.Status = models.SyncRunSuccess
	case result.Failed < result.Total:
		result.Status = models.SyncRunPartial
	default:
		result.Status = models.SyncRunError
	}
	if len(errs) > 0 {
		joined := strings.Join(errs, "; ")
		result.Errors = &joined
	}
	return result, nil
}

// upsertBatch writes one chunk inside a transaction. A poisoned batch
// (any row error aborts a Postgres transaction) is rolled back and retried
// row by row so one bad product costs one row, not fifty.
func (s *Service) upsertBatch(rows []models.ExternalProduct) (created, updated int, errs []string) {
	tx, err := s.db.Begin()
	if err != nil {
		errs = append(errs, fmt.Sprintf("begin batch: %v", err))
		return
	}

	ok := true
	for i := range rows {
		p := mapProduct(&rows[i])
		isNew, err := s.products.UpsertTx(tx, p)
		if err != nil {
			ok = false
			break
		}
		if isNew {
			created++
		} else {
			updated++
		}
	}

	if ok {
		if err := tx.Commit(); err != nil {
			errs = append(errs, fmt.Sprintf("commit batch: %v", err))
			return 0, 0, errs
		}
		return created, updated, nil
	}

	_ = tx.Rollback()
	return s.upsertRows(rows)
}

// upsertRows is the slow path: one transaction per row.
func (s *Service) upsertRows(rows []models.ExternalProduct) (created, updated int, errs []string) {
	for i := range rows {
		p := mapProduct(&rows[i])

		tx, err := s.db.Begin()
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		isNew, err := s.products.UpsertTx(tx, p)
		if err != nil {
			_ = tx.Rollback()
			errs = append(errs, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}
		if err := tx.Commit(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", p.Name, err))
			continue
		}

		if isNew {
			created++
		} else {
			updated++
		}
	}
	return
}

func (s *Service) setProgress(update func(*Progress)) {
	s.mu.Lock()
	update(&s.progress)
	s.mu.Unlock()
}

// mapProduct converts a storefront row into a local product index row.
func mapProduct(ext *models.ExternalProduct) *models.Product {
	return &models.Product{
		ExternalID:      ext.ID,
		Name:            ext.Name,
		Slug:            slug.Generate(ext.Name),
		Category:        ext.Category,
		Description:     ext.Description,
		Price:           ext.Price,
		SalePrice:       ext.SalePrice,
		Tags:            ext.Tags,
		ImageURL:        ext.ImageURL,
		PopularityScore: PopularityScore(ext),
		SyncStatus:      models.SyncStatusActive,
		LastSyncedAt:    time.Now(),
	}
}
