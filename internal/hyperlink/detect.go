// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package hyperlink detects mentions of catalog items inside generated
// article text and rewrites the text with anchor markup. The detection is
// deliberately simple string/regex work tuned for one product catalog, kept
// behind a narrow API so the heuristics can evolve independently of the
// generation pipeline.
package hyperlink

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

// Options tune mention detection.
type Options struct {
	// MaxLinks caps the total number of links per article.
	MaxLinks int

	// MinDistance is the minimum character distance between two links to
	// the same target.
	MinDistance int
}

// DefaultOptions match the catalog's tuning: at most 8 links, repeats of
// the same target at least 200 characters apart.
func DefaultOptions() Options {
	return Options{MaxLinks: 8, MinDistance: 200}
}

// Mention is one detected or AI-suggested occurrence of a linkable item,
// with its resolved URL and character offset into the article text.
type Mention struct {
	Text       string
	TargetType models.LinkTargetType
	TargetID   uuid.UUID
	URL        string
	Offset     int
}

var (
	// anchorSpan matches a complete anchor element including its text.
	anchorSpan = regexp.MustCompile(`(?s)<a\b[^>]*>.*?</a>`)
	// tagSpan matches any single HTML tag.
	tagSpan = regexp.MustCompile(`<[^>]+>`)
)

// forbiddenSpans returns the character ranges where links must not be
// inserted: inside existing anchors and inside any tag.
func forbiddenSpans(text string) [][2]int {
	var spans [][2]int
	for _, m := range anchorSpan.FindAllStringIndex(text, -1) {
		spans = append(spans, [2]int{m[0], m[1]})
	}
	for _, m := range tagSpan.FindAllStringIndex(text, -1) {
		spans = append(spans, [2]int{m[0], m[1]})
	}
	return spans
}

func inSpans(spans [][2]int, start, end int) bool {
	for _, s := range spans {
		if start < s[1] && end > s[0] {
			return true
		}
	}
	return false
}

// namePattern builds the match pattern for an item name: case-insensitive,
// with runs of spaces and hyphens treated as interchangeable, so
// "Whey-Protein Isolate" matches "whey protein isolate" and vice versa.
func namePattern(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.TrimSpace(name))
	flexible := regexp.MustCompile(`(?:\\? |-)+`).ReplaceAllString(quoted, `[\s-]+`)
	re, err := regexp.Compile(`(?i)\b` + flexible + `\b`)
	if err != nil {
		// A name that breaks the pattern is simply not linkable.
		return nil
	}
	return re
}

// Detect finds linkable mentions in text. Products are tried before
// categories, longer names before shorter ones, so specific product names
// win over generic category words. existing mentions (e.g. AI-suggested
// links already accepted) count toward the MaxLinks cap, claim their text
// spans, and enforce the per-target distance rule.
func Detect(text string, items []models.LinkableItem, existing []Mention, opts Options) []Mention {
	if opts.MaxLinks <= 0 {
		opts = DefaultOptions()
	}

	ordered := make([]models.LinkableItem, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Type != ordered[j].Type {
			return ordered[i].Type == models.LinkTargetProduct
		}
		return len(ordered[i].Name) > len(ordered[j].Name)
	})

	forbidden := forbiddenSpans(text)

	// Claimed spans and per-target offsets seeded from existing mentions.
	claimed := make([][2]int, 0, len(existing))
	lastOffset := make(map[uuid.UUID][]int)
	total := len(existing)
	for _, m := range existing {
		claimed = append(claimed, [2]int{m.Offset, m.Offset + len(m.Text)})
		lastOffset[m.TargetID] = append(lastOffset[m.TargetID], m.Offset)
	}

	var found []Mention

	// First pass links each item at most once; a second pass fills any
	// remaining capacity with spaced repeats.
	for pass := 0; pass < 2 && total < opts.MaxLinks; pass++ {
		for _, item := range ordered {
			if total >= opts.MaxLinks {
				break
			}
			if pass == 0 && len(lastOffset[item.ID]) > 0 {
				continue // already linked (by the model or a prior item)
			}
			if pass == 1 && len(lastOffset[item.ID]) != 1 {
				continue // repeats only for items linked exactly once
			}

			re := namePattern(item.Name)
			if re == nil {
				continue
			}

			for _, loc := range re.FindAllStringIndex(text, -1) {
				start, end := loc[0], loc[1]
				if inSpans(forbidden, start, end) || inSpans(claimed, start, end) {
					continue
				}
				if tooClose(lastOffset[item.ID], start, opts.MinDistance) {
					continue
				}

				m := Mention{
					Text:       text[start:end],
					TargetType: item.Type,
					TargetID:   item.ID,
					URL:        item.URL,
					Offset:     start,
				}
				found = append(found, m)
				claimed = append(claimed, [2]int{start, end})
				lastOffset[item.ID] = append(lastOffset[item.ID], start)
				total++
				break // one occurrence per item per pass
			}
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Offset < found[j].Offset })
	return found
}

// tooClose reports whether start is within minDist of any prior offset.
func tooClose(prior []int, start, minDist int) bool {
	for _, p := range prior {
		d := start - p
		if d < 0 {
			d = -d
		}
		if d < minDist {
			return true
		}
	}
	return false
}

// Insert rewrites text with anchor markup for each mention. Mentions are
// applied back-to-front (descending offset) so earlier offsets stay valid
// while later ones are spliced.
func Insert(text string, mentions []Mention) string {
	ordered := make([]Mention, len(mentions))
	copy(ordered, mentions)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Offset > ordered[j].Offset })

	for _, m := range ordered {
		end := m.Offset + len(m.Text)
		if m.Offset < 0 || end > len(text) || text[m.Offset:end] != m.Text {
			continue // stale offset — skip rather than corrupt the article
		}
		anchor := `<a href="` + m.URL + `" data-link-type="` + string(m.TargetType) +
			`" data-link-id="` + m.TargetID.String() + `">` + m.Text + `</a>`
		text = text[:m.Offset] + anchor + text[end:]
	}
	return text
}
