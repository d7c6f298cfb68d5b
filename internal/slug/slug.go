// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Ensure Chocolate 950g!" → "ensure-chocolate-950g"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Join slugifies each part and joins the non-empty results with hyphens.
// Used for composite slugs like product-category-title.
func Join(parts ...string) string {
	var out []string
	for _, p := range parts {
		if s := Generate(p); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "-")
}

// WithSuffix appends a numeric collision suffix: WithSuffix("my-post", 2)
// returns "my-post-2". A suffix of 0 returns the slug unchanged.
func WithSuffix(slug string, n int) string {
	if n <= 0 {
		return slug
	}
	return fmt.Sprintf("%s-%d", slug, n)
}
