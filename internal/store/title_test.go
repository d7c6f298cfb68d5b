// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// testProduct inserts a product row for title tests and registers cleanup.
// Cascades remove its titles and join rows.
func testProduct(t *testing.T, db *sql.DB) *models.Product {
	t.Helper()

	externalID := rand.Int63n(1<<40) + 1_000_000
	t.Cleanup(func() { cleanProducts(t, db, externalID) })

	s := NewProductStore(db)
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	p := &models.Product{
		ExternalID: externalID,
		Name:       "Test Whey " + uuid.NewString()[:8],
		Slug:       "test-whey-" + uuid.NewString()[:8],
		Category:   "Proteins",
		Price:      129.90,
	}
	if _, err := s.UpsertTx(tx, p); err != nil {
		tx.Rollback()
		t.Fatalf("UpsertTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var id uuid.UUID
	if err := db.QueryRow(
		"SELECT id FROM product_index WHERE external_id = $1", externalID).Scan(&id); err != nil {
		t.Fatalf("lookup product: %v", err)
	}
	p.ID = id
	return p
}

func TestTitleStoreReplaceAssignsOrdinals(t *testing.T) {
	db := testDB(t)
	s := NewTitleStore(db)
	product := testProduct(t, db)

	batch := []models.ArticleTitle{
		{Title: "First Title", Slug: "first-title", SEOScore: 80},
		{Title: "Second Title", Slug: "second-title", SEOScore: 70},
		{Title: "Third Title", Slug: "third-title", SEOScore: 60},
	}

	inserted, err := s.ReplaceForProduct(product.ID, batch)
	if err != nil {
		t.Fatalf("ReplaceForProduct: %v", err)
	}
	if len(inserted) != 3 {
		t.Fatalf("inserted: got %d, want 3", len(inserted))
	}
	for i, row := range inserted {
		if row.Ordinal != i+1 {
			t.Errorf("ordinal[%d]: got %d, want %d", i, row.Ordinal, i+1)
		}
		if row.Status != models.TitleStatusPending {
			t.Errorf("status[%d]: got %q, want pending", i, row.Status)
		}
	}
}

func TestTitleStoreReplaceIsWholesale(t *testing.T) {
	db := testDB(t)
	s := NewTitleStore(db)
	product := testProduct(t, db)

	if _, err := s.ReplaceForProduct(product.ID, []models.ArticleTitle{
		{Title: "Old One", Slug: "old-one"},
		{Title: "Old Two", Slug: "old-two"},
	}); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	if _, err := s.ReplaceForProduct(product.ID, []models.ArticleTitle{
		{Title: "New One", Slug: "new-one"},
	}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	titles, err := s.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("ListByProduct: %v", err)
	}
	if len(titles) != 1 {
		t.Fatalf("titles after replace: got %d, want 1", len(titles))
	}
	if titles[0].Title != "New One" || titles[0].Ordinal != 1 {
		t.Errorf("unexpected surviving title: %+v", titles[0])
	}
}

func TestTitleStoreUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewTitleStore(db)
	product := testProduct(t, db)

	inserted, err := s.ReplaceForProduct(product.ID, []models.ArticleTitle{
		{Title: "Pending Title", Slug: "pending-title"},
	})
	if err != nil {
		t.Fatalf("ReplaceForProduct: %v", err)
	}

	if err := s.UpdateStatus(inserted[0].ID, models.TitleStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	found, err := s.FindByID(inserted[0].ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Status != models.TitleStatusCompleted {
		t.Errorf("status: got %q, want completed", found.Status)
	}
}
