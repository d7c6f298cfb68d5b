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
	"time"

	"github.com/google/uuid"

	"nutripress/internal/ai"
	"nutripress/internal/hyperlink"
	"nutripress/internal/models"
	"nutripress/internal/quality"
	"nutripress/internal/seo"
	"nutripress/internal/slug"
	"nutripress/internal/store"
)

// Prompt candidate limits. More linkable items than this just bloats the
// prompt without improving link quality.
const (
	promptMaxProducts   = 30
	promptMaxCategories = 20
	maxSlugRetries      = 50
)

// BlogWriter is the slice of the blog store the article generator writes
// through. Satisfied by store.BlogStore.
type BlogWriter interface {
	Create(b *models.Blog) (*models.Blog, error)
	SlugExists(slug string) (bool, error)
}

// ArticleGenerator produces one full article for an article title: model
// call, link merging, validation, SEO metadata and persistence.
type ArticleGenerator struct {
	products     *store.ProductStore
	titles       *store.TitleStore
	blogs        BlogWriter
	links        *store.HyperlinkStore
	productBlogs *store.ProductBlogStore
	hyperlinks   *hyperlink.Service
	validator    *quality.Validator
	resolver     ProviderResolver
}

func NewArticleGenerator(
	products *store.ProductStore,
	titles *store.TitleStore,
	blogs BlogWriter,
	links *store.HyperlinkStore,
	productBlogs *store.ProductBlogStore,
	hyperlinks *hyperlink.Service,
	validator *quality.Validator,
	resolver ProviderResolver,
) *ArticleGenerator {
	return &ArticleGenerator{
		products:     products,
		titles:       titles,
		blogs:        blogs,
		links:        links,
		productBlogs: productBlogs,
		hyperlinks:   hyperlinks,
		validator:    validator,
		resolver:     resolver,
	}
}

// Generate writes one article for the given title row. Every failure path
// marks the title failed and records a failed product_blogs row before
// returning; the caller treats the error as that article's outcome, not a
// batch abort.
func (g *ArticleGenerator) Generate(ctx context.Context, titleID uuid.UUID) (*models.Blog, error) {
	title, err := g.titles.FindByID(titleID)
	if err != nil {
		return nil, fmt.Errorf("load title: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("article title %s not found", titleID)
	}

	product, err := g.products.FindByID(title.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", title.ProductID)
	}

	blog, err := g.generate(ctx, product, title)
	if err != nil {
		g.recordFailure(product, title, err)
		return nil, err
	}
	return blog, nil
}

func (g *ArticleGenerator) generate(ctx context.Context, product *models.Product, title *models.ArticleTitle) (*models.Blog, error) {
	items, err := g.hyperlinks.LinkableItems(ctx)
	if err != nil {
		return nil, err
	}

	provider, cfg, err := g.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := provider.Generate(ctx, ai.GenerateRequest{
		SystemPrompt: articleSystemPrompt,
		Prompt:       articlePrompt(product, title.Title, items),
		MaxTokens:    articleTokenBudget(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("generate article %q: %w", title.Title, err)
	}

	content, suggested := ExtractMarkers(result.Content, items)

	linked, mentions, err := g.hyperlinks.Link(ctx, content, suggested)
	if err != nil {
		return nil, err
	}

	report := g.validator.Validate(linked, product.Name)
	for _, issue := range report.Issues {
		if issue.Severity == quality.SeverityWarning {
			slog.Warn("content issue", "title", title.Title, "component", issue.Component, "message", issue.Message)
		}
	}
	if !report.Valid {
		return nil, fmt.Errorf("article %q failed validation: score %d, issues %v",
			title.Title, report.Score, report.Issues)
	}

	meta := seo.Optimize(product, title.Title, linked)

	blogSlug, err := g.availableSlug(meta.Slug)
	if err != nil {
		return nil, err
	}

	keywords := strings.Join(meta.Keywords, ", ")
	blog, err := g.blogs.Create(&models.Blog{
		Title:           title.Title,
		Slug:            blogSlug,
		Content:         linked,
		MetaTitle:       &meta.MetaTitle,
		MetaDescription: &meta.MetaDescription,
		MetaKeywords:    &keywords,
		ProductID:       &product.ID,
		AutoGenerated:   true,
		Status:          models.BlogStatusPublished,
	})
	if err != nil {
		return nil, fmt.Errorf("save article %q: %w", title.Title, err)
	}

	rows := make([]models.Hyperlink, 0, len(mentions))
	for _, m := range mentions {
		rows = append(rows, models.Hyperlink{
			BlogID:     blog.ID,
			Text:       m.Text,
			TargetType: m.TargetType,
			TargetID:   m.TargetID,
			URL:        m.URL,
			Offset:     m.Offset,
		})
	}
	if err := g.links.ReplaceForBlog(blog.ID, rows); err != nil {
		return nil, fmt.Errorf("save hyperlinks for %q: %w", title.Title, err)
	}

	if err := g.titles.UpdateStatus(title.ID, models.TitleStatusCompleted); err != nil {
		return nil, err
	}
	if err := g.productBlogs.Upsert(&models.ProductBlog{
		ProductID:       product.ID,
		ArticleTitleID:  title.ID,
		BlogID:          &blog.ID,
		ValidationScore: report.Score,
		SEOScore:        meta.Score,
		Status:          models.ProductBlogStatusCompleted,
	}); err != nil {
		return nil, err
	}

	slog.Info("article generated",
		"title", title.Title,
		"slug", blog.Slug,
		"links", len(mentions),
		"validation_score", report.Score,
		"seo_score", meta.Score,
		"tokens", result.TokensUsed,
		"duration", time.Since(started).Round(time.Millisecond),
	)
	return blog, nil
}

// recordFailure marks the title and join row failed. Bookkeeping errors
// here are logged, not returned: the original failure is the one the
// caller needs.
func (g *ArticleGenerator) recordFailure(product *models.Product, title *models.ArticleTitle, cause error) {
	if err := g.titles.UpdateStatus(title.ID, models.TitleStatusFailed); err != nil {
		slog.Error("mark title failed", "title_id", title.ID, "error", err)
	}
	if err := g.productBlogs.Upsert(&models.ProductBlog{
		ProductID:      product.ID,
		ArticleTitleID: title.ID,
		Status:         models.ProductBlogStatusFailed,
	}); err != nil {
		slog.Error("record failed article", "title_id", title.ID, "error", err)
	}
	slog.Error("article generation failed", "title", title.Title, "error", cause)
}

// availableSlug resolves slug collisions with a numeric suffix retry loop.
func (g *ArticleGenerator) availableSlug(base string) (string, error) {
	for n := 0; n <= maxSlugRetries; n++ {
		candidate := slug.WithSuffix(base, n)
		exists, err := g.blogs.SlugExists(candidate)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugRetries)
}

const articleSystemPrompt = "You are a content writer for an online supplement shop. " +
	"You write helpful, factual HTML articles and never mention other shops or external websites."

// articlePrompt embeds the linkable catalog so the model can suggest its
// own anchor placements with the bracket-pipe marker syntax.
func articlePrompt(product *models.Product, title string, items []models.LinkableItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a blog article titled %q.\n\n", title)
	fmt.Fprintf(&b, "Main product: %s (category: %s, price: %.2f).\n", product.Name, product.Category, product.Price)
	if product.Description != "" {
		fmt.Fprintf(&b, "Product description: %s\n", firstChars(product.Description, 600))
	}

	b.WriteString("\nStructure: HTML with <h2> section headings and <p> paragraphs, 600-900 words, no <html> or <body> wrapper.\n")
	b.WriteString("Do not mention prices of other products. Never link to external websites.\n\n")

	products, categories := 0, 0
	b.WriteString("You may reference these shop items. To suggest a link, write the item name as [name|type:id]:\n")
	for _, it := range items {
		switch {
		case it.Type == models.LinkTargetProduct && products < promptMaxProducts:
			fmt.Fprintf(&b, "- [%s|product:%s]\n", it.Name, it.ID)
			products++
		case it.Type == models.LinkTargetCategory && categories < promptMaxCategories:
			fmt.Fprintf(&b, "- [%s|category:%s]\n", it.Name, it.ID)
			categories++
		}
	}
	b.WriteString("\nUse at most 5 link markers, each at most once.")
	return b.String()
}

var markerPattern = regexp.MustCompile(`\[([^\[\]|]+)\|(product|category):([0-9a-fA-F-]{36})\]`)

// ExtractMarkers strips `[text|type:id]` markers from model output and
// returns the plain text plus the surviving suggestions as mentions with
// offsets into the stripped text. Markers pointing at unknown ids are
// stripped but produce no mention; suggestions are deduplicated by URL and
// capped at the link budget.
func ExtractMarkers(text string, items []models.LinkableItem) (string, []hyperlink.Mention) {
	byID := make(map[uuid.UUID]models.LinkableItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var (
		out      strings.Builder
		mentions []hyperlink.Mention
		seenURL  = map[string]bool{}
		last     int
		budget   = hyperlink.DefaultOptions().MaxLinks
	)

	for _, m := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
		out.WriteString(text[last:m[0]])
		last = m[1]

		anchor := text[m[2]:m[3]]
		kind := models.LinkTargetType(text[m[4]:m[5]])
		id, err := uuid.Parse(text[m[6]:m[7]])

		offset := out.Len()
		out.WriteString(anchor)

		if err != nil {
			continue
		}
		item, ok := byID[id]
		if !ok || item.Type != kind {
			continue // hallucinated id or mismatched type
		}
		if seenURL[item.URL] || len(mentions) >= budget {
			continue
		}
		seenURL[item.URL] = true
		mentions = append(mentions, hyperlink.Mention{
			Text:       anchor,
			TargetType: item.Type,
			TargetID:   item.ID,
			URL:        item.URL,
			Offset:     offset,
		})
	}
	out.WriteString(text[last:])
	return out.String(), mentions
}
