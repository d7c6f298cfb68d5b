// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hyperlink

import (
	"context"
	"fmt"
	"log/slog"

	"nutripress/internal/cache"
	"nutripress/internal/models"
	"nutripress/internal/store"
)

// Service loads the linkable catalog and runs detection against it. The
// catalog (active products plus categories) is cached for a few minutes so
// batch generation does not hammer the database; cache failures fall back
// to a direct load.
type Service struct {
	products   *store.ProductStore
	categories *store.CategoryStore
	cache      *cache.LinkableCache
	opts       Options
}

func NewService(products *store.ProductStore, categories *store.CategoryStore, linkable *cache.LinkableCache) *Service {
	return &Service{
		products:   products,
		categories: categories,
		cache:      linkable,
		opts:       DefaultOptions(),
	}
}

// LinkableItems returns the current linkable catalog, from cache when
// possible.
func (s *Service) LinkableItems(ctx context.Context) ([]models.LinkableItem, error) {
	if s.cache != nil {
		if items, ok := s.cache.Get(ctx); ok {
			return items, nil
		}
	}

	items, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, items)
	}
	return items, nil
}

func (s *Service) loadCatalog() ([]models.LinkableItem, error) {
	products, err := s.products.ListActive()
	if err != nil {
		return nil, fmt.Errorf("load linkable products: %w", err)
	}
	categories, err := s.categories.List()
	if err != nil {
		return nil, fmt.Errorf("load linkable categories: %w", err)
	}

	items := make([]models.LinkableItem, 0, len(products)+len(categories))
	for _, p := range products {
		items = append(items, models.LinkableItem{
			ID:   p.ID,
			Type: models.LinkTargetProduct,
			Name: p.Name,
			URL:  "/products/" + p.Slug,
		})
	}
	for _, c := range categories {
		items = append(items, models.LinkableItem{
			ID:   c.ID,
			Type: models.LinkTargetCategory,
			Name: c.Name,
			URL:  "/category/" + c.Slug,
		})
	}
	return items, nil
}

// InvalidateCatalog drops the cached catalog, e.g. after a product sync.
func (s *Service) InvalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// Link detects mentions in text (respecting any existing mentions) and
// returns the rewritten text plus every mention now present, sorted by
// offset.
func (s *Service) Link(ctx context.Context, text string, existing []Mention) (string, []Mention, error) {
	items, err := s.LinkableItems(ctx)
	if err != nil {
		return "", nil, err
	}

	detected := Detect(text, items, existing, s.opts)
	all := append(append([]Mention{}, existing...), detected...)
	linked := Insert(text, all)

	slog.Debug("hyperlinks inserted",
		"existing", len(existing),
		"detected", len(detected),
	)
	return linked, all, nil
}

// Options returns the service's detection options.
func (s *Service) Options() Options { return s.opts }
