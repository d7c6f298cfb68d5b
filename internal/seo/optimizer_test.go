package seo

import (
	"strings"
	"testing"

	"nutripress/internal/models"
)

func testProduct(name, category string) *models.Product {
	return &models.Product{Name: name, Category: category}
}

func TestOptimizeMetaTitleBudget(t *testing.T) {
	long := strings.Repeat("Extremely Long Product Name ", 5)
	p := testProduct(long, "Proteins")

	r := Optimize(p, "The Complete Guide to "+long, "<p>content</p>")
	if len(r.MetaTitle) > 60 {
		t.Errorf("meta title %d chars, want <= 60: %q", len(r.MetaTitle), r.MetaTitle)
	}
}

func TestOptimizeMetaTitleAppendsProduct(t *testing.T) {
	p := testProduct("Creatine", "Performance")
	r := Optimize(p, "Creatine for Beginners", "<p>content</p>")

	if r.MetaTitle != "Creatine for Beginners | Creatine" {
		t.Errorf("meta title = %q", r.MetaTitle)
	}
}

func TestOptimizeMetaDescriptionBudget(t *testing.T) {
	p := testProduct("Omega 3", "Essentials")
	content := "<p>" + strings.Repeat("Fish oil supports heart and brain health over years of use. ", 20) + "</p>"

	r := Optimize(p, "Omega 3 Benefits", content)
	if n := len(r.MetaDescription); n > 160 {
		t.Errorf("meta description %d chars, want <= 160", n)
	}
	if n := len(r.MetaDescription); n < 120 {
		t.Errorf("meta description %d chars, want padded toward 120", n)
	}
}

func TestOptimizeMetaDescriptionPadsShortContent(t *testing.T) {
	p := testProduct("Zinc", "Minerals")
	r := Optimize(p, "Zinc Basics", "<p>Zinc supports immunity through the winter months for most adults.</p>")

	if !strings.Contains(r.MetaDescription, "Discover Zinc in our shop.") {
		t.Errorf("short description not padded: %q", r.MetaDescription)
	}
	if len(r.MetaDescription) > 160 {
		t.Errorf("padded description %d chars, want <= 160", len(r.MetaDescription))
	}
}

func TestOptimizeSlugComposition(t *testing.T) {
	p := testProduct("Whey Protein", "Proteins")
	r := Optimize(p, "Best Shake Recipes", "<p>content</p>")

	if r.Slug != "whey-protein-proteins-best-shake-recipes" {
		t.Errorf("slug = %q", r.Slug)
	}
}

func TestOptimizeKeywords(t *testing.T) {
	p := testProduct("Magnesium", "Minerals")
	content := "<p>" + strings.Repeat("magnesium sleep recovery muscles magnesium sleep ", 10) + "</p>"

	r := Optimize(p, "Magnesium and Sleep", content)

	if len(r.Keywords) == 0 || r.Keywords[0] != "magnesium" {
		t.Fatalf("keywords = %v, want product name first", r.Keywords)
	}
	if r.Keywords[1] != "minerals" {
		t.Errorf("keywords[1] = %q, want category", r.Keywords[1])
	}
	joined := strings.Join(r.Keywords, " ")
	if !strings.Contains(joined, "sleep") {
		t.Errorf("high-frequency token missing from keywords: %v", r.Keywords)
	}
	for _, k := range r.Keywords {
		if stopwords[k] {
			t.Errorf("stopword %q leaked into keywords", k)
		}
	}
}

func TestOptimizeScoresStructuredContent(t *testing.T) {
	p := testProduct("Creatine", "Performance")
	body := "<h2>Why creatine</h2><p>" +
		strings.Repeat("Creatine supports strength and recovery for most athletes. ", 10) +
		`</p><h2>Usage</h2><p>See <a href="/products/creatine">creatine</a> here.</p>`

	structured := Optimize(p, "Creatine Guide for Athletes", body)
	bare := Optimize(p, "x", "<p>y</p>")

	if structured.Score <= bare.Score {
		t.Errorf("structured score %d not above bare score %d", structured.Score, bare.Score)
	}
}
