// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package autoblog orchestrates full article generation: titles first,
// then one article per title, per product or across the catalog. It owns
// no heuristics of its own; it sequences the generator package and
// aggregates outcomes for the admin dashboard.
package autoblog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"nutripress/internal/models"
	"nutripress/internal/store"
)

// TitleMaker generates a title batch for a product. Satisfied by
// generator.TitleGenerator.
type TitleMaker interface {
	Generate(ctx context.Context, productID uuid.UUID) ([]models.ArticleTitle, error)
}

// ArticleMaker generates one article for a title row. Satisfied by
// generator.ArticleGenerator.
type ArticleMaker interface {
	Generate(ctx context.Context, titleID uuid.UUID) (*models.Blog, error)
}

// TitleSource reads a product's existing title rows.
type TitleSource interface {
	ListByProduct(productID uuid.UUID) ([]models.ArticleTitle, error)
}

// ProductSource lists products eligible for batch generation.
type ProductSource interface {
	ListActive() ([]models.Product, error)
	ListActiveLimit(limit int) ([]models.Product, error)
}

// StatStores are the concrete stores behind the read-only aggregation
// endpoints. Nil fields are allowed in tests that never call them.
type StatStores struct {
	Products     *store.ProductStore
	Titles       *store.TitleStore
	Blogs        *store.BlogStore
	ProductBlogs *store.ProductBlogStore
}

// Service is the top-level auto-blog orchestrator.
type Service struct {
	titleGen   TitleMaker
	articleGen ArticleMaker
	titles     TitleSource
	products   ProductSource
	stats      StatStores
}

func NewService(titleGen TitleMaker, articleGen ArticleMaker, titles TitleSource, products ProductSource, stats StatStores) *Service {
	return &Service{
		titleGen:   titleGen,
		articleGen: articleGen,
		titles:     titles,
		products:   products,
		stats:      stats,
	}
}

// Options control one per-product generation run.
type Options struct {
	// RegenerateTitles forces a fresh title batch even when titles exist.
	RegenerateTitles bool

	// SkipCompleted leaves titles that already have an article alone.
	SkipCompleted bool
}

// Outcome is the result of one article slot.
type Outcome struct {
	TitleID uuid.UUID  `json:"title_id"`
	Title   string     `json:"title"`
	BlogID  *uuid.UUID `json:"blog_id,omitempty"`
	Skipped bool       `json:"skipped,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Run statuses for one product.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// Result aggregates one product's generation run.
type Result struct {
	ProductID uuid.UUID `json:"product_id"`
	Status    string    `json:"status"`
	Generated int       `json:"generated"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// GenerateAllForProduct ensures the product has a title batch, then
// generates an article per title. Individual article failures are
// recorded in the result, not propagated; the returned error covers only
// setup failures (no titles at all).
func (s *Service) GenerateAllForProduct(ctx context.Context, productID uuid.UUID, opts Options) (*Result, error) {
	titles, err := s.titles.ListByProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	if len(titles) == 0 || opts.RegenerateTitles {
		titles, err = s.titleGen.Generate(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("generate titles: %w", err)
		}
	}

	res := &Result{ProductID: productID}
	for _, title := range titles {
		if opts.SkipCompleted && title.Status == models.TitleStatusCompleted {
			res.Skipped++
			res.Outcomes = append(res.Outcomes, Outcome{TitleID: title.ID, Title: title.Title, Skipped: true})
			continue
		}

		blog, err := s.articleGen.Generate(ctx, title.ID)
		if err != nil {
			res.Failed++
			res.Outcomes = append(res.Outcomes, Outcome{TitleID: title.ID, Title: title.Title, Error: err.Error()})
			continue
		}
		res.Generated++
		res.Outcomes = append(res.Outcomes, Outcome{TitleID: title.ID, Title: title.Title, BlogID: &blog.ID})
	}

	switch {
	case res.Failed == 0:
		res.Status = StatusSuccess
	case res.Generated == 0 && res.Skipped == 0:
		res.Status = StatusFailed
	default:
		res.Status = StatusPartial
	}

	slog.Info("product generation run finished",
		"product_id", productID,
		"status", res.Status,
		"generated", res.Generated,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	return res, nil
}

// BatchResult aggregates a multi-product run.
type BatchResult struct {
	Products  int      `json:"products"`
	Generated int      `json:"generated"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// BatchGenerate runs GenerateAllForProduct over the given products (all
// active products when the list is empty, optionally limited). Completed
// articles are always skipped in batch mode. Per-product failures are
// collected, never fatal.
func (s *Service) BatchGenerate(ctx context.Context, productIDs []uuid.UUID, limit int) (*BatchResult, error) {
	if len(productIDs) == 0 {
		var (
			products []models.Product
			err      error
		)
		if limit > 0 {
			products, err = s.products.ListActiveLimit(limit)
		} else {
			products, err = s.products.ListActive()
		}
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		for _, p := range products {
			productIDs = append(productIDs, p.ID)
		}
	} else if limit > 0 && len(productIDs) > limit {
		productIDs = productIDs[:limit]
	}

	batch := &BatchResult{}
	for _, id := range productIDs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		batch.Products++
		res, err := s.GenerateAllForProduct(ctx, id, Options{SkipCompleted: true})
		if err != nil {
			batch.Failed++
			batch.Errors = append(batch.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		batch.Generated += res.Generated
		batch.Skipped += res.Skipped
		batch.Failed += res.Failed
		for _, o := range res.Outcomes {
			if o.Error != "" {
				batch.Errors = append(batch.Errors, fmt.Sprintf("%s: %s", o.Title, o.Error))
			}
		}
	}
	return batch, nil
}
