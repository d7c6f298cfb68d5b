// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sync

import (
	"math"

	"nutripress/internal/models"
)

// PopularityScore derives a 0-100 heuristic from storefront signals:
// rating (up to 30), review count (up to 20), log-scaled views (up to 25),
// stock (15) and discount depth (up to 10). It feeds product ordering in
// generation batches, nothing more precise than that.
func PopularityScore(p *models.ExternalProduct) int {
	score := 0.0

	// Rating 0-5 → 0-30.
	if p.Rating > 0 {
		score += math.Min(p.Rating, 5) / 5 * 30
	}

	// Reviews saturate at 50.
	if p.ReviewCount > 0 {
		score += math.Min(float64(p.ReviewCount), 50) / 50 * 20
	}

	// Views are long-tailed; log10 scaling keeps the top sellers from
	// flattening everything else. 10k views maxes the component.
	if p.ViewCount > 0 {
		score += math.Min(math.Log10(float64(p.ViewCount))/4, 1) * 25
	}

	if p.InStock {
		score += 15
	}

	// Discount depth 0-50% → 0-10.
	if p.SalePrice != nil && p.Price > 0 && *p.SalePrice < p.Price {
		depth := (p.Price - *p.SalePrice) / p.Price
		score += math.Min(depth/0.5, 1) * 10
	}

	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
