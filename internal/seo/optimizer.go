// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo derives meta title, description, slug and keywords for a
// generated article by string templating and truncation, then point-scores
// the result. Everything here is deterministic and database-free.
package seo

import (
	"regexp"
	"sort"
	"strings"

	"nutripress/internal/models"
	"nutripress/internal/slug"
)

// Character budgets for search snippets.
const (
	maxMetaTitle       = 60
	maxMetaDescription = 160
	minMetaDescription = 120
)

// Result holds the derived metadata and its score.
type Result struct {
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Slug            string   `json:"slug"`
	Keywords        []string `json:"keywords"`
	Score           int      `json:"score"`
}

var (
	htmlTag    = regexp.MustCompile(`<[^>]+>`)
	headingTag = regexp.MustCompile(`(?i)<h[1-6][^>]*>`)
	anchorTag  = regexp.MustCompile(`(?i)<a\s`)
	wordToken  = regexp.MustCompile(`[a-zA-ZăâîșțĂÂÎȘȚ]{3,}`)
)

// stopwords excluded from keyword extraction, English plus the Romanian
// fillers that show up in localized product descriptions.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "you": true, "your": true, "are": true, "can": true,
	"has": true, "have": true, "from": true, "more": true, "most": true,
	"its": true, "but": true, "not": true, "all": true, "also": true,
	"when": true, "how": true, "why": true, "what": true, "which": true,
	"will": true, "one": true, "our": true, "out": true, "into": true,
	"than": true, "then": true, "them": true, "they": true, "there": true,
	"pentru": true, "este": true, "sunt": true, "care": true, "mai": true,
	"din": true, "unui": true, "unei": true, "acest": true, "aceasta": true,
}

// Optimize builds metadata for one article. The slug combines product,
// category and title; uniqueness against existing blogs is the caller's
// problem.
func Optimize(product *models.Product, title, content string) *Result {
	plain := strings.TrimSpace(htmlTag.ReplaceAllString(content, " "))

	r := &Result{
		MetaTitle:       metaTitle(title, product.Name),
		MetaDescription: metaDescription(plain, product.Name),
		Slug:            slug.Join(product.Name, product.Category, title),
		Keywords:        keywords(plain, product),
	}
	r.Score = score(r, content, plain)
	return r
}

// metaTitle keeps the article title, appending the product name when it
// fits, and always lands at or under the budget.
func metaTitle(title, productName string) string {
	t := strings.TrimSpace(title)
	if withProduct := t + " | " + productName; len(withProduct) <= maxMetaTitle {
		return withProduct
	}
	return truncateWord(t, maxMetaTitle)
}

// metaDescription takes the article's opening text, truncated at a word
// boundary, padded with a call to action when it lands short of the target
// band.
func metaDescription(plain, productName string) string {
	d := truncateWord(plain, maxMetaDescription)
	if len(d) < minMetaDescription {
		cta := " Discover " + productName + " in our shop."
		if len(d)+len(cta) <= maxMetaDescription {
			d += cta
		}
	}
	return strings.TrimSpace(d)
}

// keywords combines product name and category with the top-frequency
// non-stopword tokens from the content.
func keywords(plain string, product *models.Product) []string {
	kw := []string{strings.ToLower(product.Name)}
	if product.Category != "" {
		kw = append(kw, strings.ToLower(product.Category))
	}

	freq := map[string]int{}
	for _, w := range wordToken.FindAllString(strings.ToLower(plain), -1) {
		if !stopwords[w] {
			freq[w]++
		}
	}
	tokens := make([]string, 0, len(freq))
	for w := range freq {
		tokens = append(tokens, w)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	seen := map[string]bool{}
	for _, k := range kw {
		seen[k] = true
	}
	for _, w := range tokens {
		if len(kw) >= 8 {
			break
		}
		if !seen[w] {
			kw = append(kw, w)
			seen[w] = true
		}
	}
	return kw
}

// score point-rates the derived metadata plus on-page structure.
func score(r *Result, content, plain string) int {
	s := 0

	// Meta title uses most of its budget without busting it.
	if n := len(r.MetaTitle); n >= 30 && n <= maxMetaTitle {
		s += 20
	} else if n > 0 {
		s += 10
	}

	// Description inside the target band.
	if n := len(r.MetaDescription); n >= minMetaDescription && n <= maxMetaDescription {
		s += 20
	} else if n >= 80 {
		s += 10
	}

	// Slug carries at least three hyphenated tokens.
	if strings.Count(r.Slug, "-") >= 2 {
		s += 15
	} else if r.Slug != "" {
		s += 5
	}

	// First keyword present in the text at a sane density.
	if len(r.Keywords) > 0 {
		words := len(wordToken.FindAllString(plain, -1))
		count := strings.Count(strings.ToLower(plain), r.Keywords[0])
		if words > 0 && count > 0 {
			density := float64(count) * 100 / float64(words)
			if density <= 4.0 {
				s += 15
			} else {
				s += 5
			}
		}
	}

	if len(headingTag.FindAllString(content, -1)) >= 2 {
		s += 15
	}
	if len(anchorTag.FindAllString(content, -1)) >= 1 {
		s += 15
	}
	return s
}

// truncateWord cuts s to at most max bytes, backing up to the last space
// so words are never split mid-way.
func truncateWord(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
