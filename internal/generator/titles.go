// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"nutripress/internal/ai"
	"nutripress/internal/models"
	"nutripress/internal/slug"
	"nutripress/internal/store"
)

// maxTitles is the batch size per product. Model output beyond this is
// discarded.
const maxTitles = 10

// TitleGenerator produces article title batches for a product. A batch
// replaces any prior titles wholesale.
type TitleGenerator struct {
	products *store.ProductStore
	titles   *store.TitleStore
	resolver ProviderResolver
}

func NewTitleGenerator(products *store.ProductStore, titles *store.TitleStore, resolver ProviderResolver) *TitleGenerator {
	return &TitleGenerator{products: products, titles: titles, resolver: resolver}
}

// Generate asks the model for ten titles, parses whatever comes back, and
// replaces the product's title rows. Fewer than ten parsed titles is a
// warning, not a failure; zero is an error.
func (g *TitleGenerator) Generate(ctx context.Context, productID uuid.UUID) ([]models.ArticleTitle, error) {
	product, err := g.products.FindByID(productID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", productID)
	}

	provider, cfg, err := g.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	result, err := provider.Generate(ctx, ai.GenerateRequest{
		SystemPrompt: titleSystemPrompt,
		Prompt:       titlePrompt(product),
	})
	if err != nil {
		return nil, fmt.Errorf("generate titles for %q: %w", product.Name, err)
	}

	parsed := dedupeTitles(ParseList(result.Content))
	if len(parsed) == 0 {
		return nil, fmt.Errorf("no usable titles in model output for %q", product.Name)
	}
	if len(parsed) > maxTitles {
		parsed = parsed[:maxTitles]
	}
	if len(parsed) < maxTitles {
		slog.Warn("model returned fewer titles than requested",
			"product", product.Name,
			"got", len(parsed),
			"want", maxTitles,
			"provider", cfg.Provider,
		)
	}

	batch := make([]models.ArticleTitle, 0, len(parsed))
	for _, t := range parsed {
		batch = append(batch, models.ArticleTitle{
			ProductID: productID,
			Title:     t,
			Slug:      slug.Generate(t),
			SEOScore:  ScoreTitle(t, product.Name),
		})
	}

	saved, err := g.titles.ReplaceForProduct(productID, batch)
	if err != nil {
		return nil, fmt.Errorf("save titles for %q: %w", product.Name, err)
	}

	slog.Info("titles generated",
		"product", product.Name,
		"count", len(saved),
		"tokens", result.TokensUsed,
	)
	return saved, nil
}

// dedupeTitles drops titles that reduce to a slug already seen in the
// batch. Models sometimes repeat themselves, and duplicate slugs would
// collide within one product's title rows.
func dedupeTitles(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	var out []string
	for _, t := range titles {
		s := slug.Generate(t)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, t)
	}
	return out
}

const titleSystemPrompt = "You are an SEO copywriter for an online supplement shop. " +
	"You answer with exactly the requested format and nothing else."

func titlePrompt(p *models.Product) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write 10 SEO blog article titles about the product below.\n\n")
	fmt.Fprintf(&b, "Product: %s\n", p.Name)
	if p.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", p.Category)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", firstChars(p.Description, 500))
	}
	fmt.Fprintf(&b, "Price: %.2f\n\n", p.Price)
	b.WriteString("Rules:\n")
	b.WriteString("- Each title between 40 and 70 characters.\n")
	b.WriteString("- No competitor or shop names.\n")
	b.WriteString("- Mix how-to, listicle and question formats.\n\n")
	b.WriteString(`Answer with a JSON array of 10 strings, e.g. ["title one", "title two"]. No other text.`)
	return b.String()
}

func firstChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// powerWords are terms that tend to lift click-through on listicle-style
// shop content.
var powerWords = []string{
	"guide", "best", "complete", "essential", "proven", "simple",
	"ultimate", "benefits", "mistakes", "secrets", "tips",
}

var digitPattern = regexp.MustCompile(`\d`)

// ScoreTitle rates a candidate title 0-100 on cheap signals: length band,
// power words, a question hook, digits, and word diversity.
func ScoreTitle(title, productName string) int {
	score := 30
	lower := strings.ToLower(title)

	switch n := len(title); {
	case n >= 40 && n <= 70:
		score += 20
	case n >= minTitleLen && n <= maxTitleLen:
		score += 10
	}

	for _, w := range powerWords {
		if strings.Contains(lower, w) {
			score += 10
			break
		}
	}

	if strings.Contains(title, "?") {
		score += 10
	}
	if digitPattern.MatchString(title) {
		score += 10
	}
	if productName != "" && strings.Contains(lower, strings.ToLower(productName)) {
		score += 10
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		unique := map[string]bool{}
		for _, w := range words {
			unique[w] = true
		}
		if float64(len(unique))/float64(len(words)) >= 0.8 {
			score += 10
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}
