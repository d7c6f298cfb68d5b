// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package quality scores generated article text with pragmatic string
// heuristics: length band, claim and competitor pattern matching, a Flesch
// reading-ease approximation, on-page SEO checks and a naive duplicate
// probe against existing blogs. None of this is principled NLP; the point
// is to reject obviously broken model output before it reaches the shop.
package quality

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding from validation. Only error-level issues block
// publication.
type Issue struct {
	Severity  Severity `json:"severity"`
	Component string   `json:"component"`
	Message   string   `json:"message"`
}

// Report is the outcome of validating one article.
type Report struct {
	Score      int            `json:"score"`
	Valid      bool           `json:"valid"`
	Components map[string]int `json:"components"`
	Issues     []Issue        `json:"issues"`
}

// DuplicateChecker probes existing blog content for a literal snippet.
// Satisfied by store.BlogStore.
type DuplicateChecker interface {
	ContainsSnippet(snippet string) (bool, error)
}

// Component weights sum to 100.
const (
	weightLength     = 15
	weightClaims     = 25
	weightExternal   = 20
	weightReadable   = 10
	weightSEO        = 20
	weightDuplicates = 10
)

// Length band for a generated article, in characters of stripped text.
const (
	minLength = 1500
	maxLength = 12000
)

// minValidScore is the publication gate: score at or above this, with no
// error-level issues, means the article may be saved as completed.
const minValidScore = 70

// misleadingPatterns flag false-promise phrasing that supplement content
// must never carry. Matches are heavy penalties but not hard failures.
var misleadingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(cure[sd]?|heal[sd]?)\b.{0,40}\b(cancer|diabetes|disease)`),
	regexp.MustCompile(`(?i)\bguaranteed?\b.{0,30}\b(result|weight loss|muscle|effect)`),
	regexp.MustCompile(`(?i)\b(miracle|magic)\b.{0,20}\b(pill|supplement|solution|formula)`),
	regexp.MustCompile(`(?i)\bno side effects?\b`),
	regexp.MustCompile(`(?i)\blose\b.{0,20}\b\d+\s*(kg|pounds?|lbs)\b.{0,20}\b(days?|week)\b`),
	regexp.MustCompile(`(?i)\bclinically proven\b`),
	regexp.MustCompile(`(?i)\bdoctors?\s+(hate|don'?t want)\b`),
}

// competitorNames and externalDomain catch text that points readers away
// from the shop. Any hit zeroes the component and is an error.
var competitorNames = []string{
	"amazon", "ebay", "walmart", "iherb", "myprotein", "bodybuilding.com",
	"gnc", "holland & barrett", "vitacost",
}

var externalDomain = regexp.MustCompile(`(?i)https?://(?:www\.)?([a-z0-9.-]+)`)

// ownDomains are allowed in absolute links.
var ownDomains = map[string]bool{
	"nutripress.local": true,
	"localhost":        true,
}

var (
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
	headingTag    = regexp.MustCompile(`(?i)<h[1-6][^>]*>`)
	paragraphTag  = regexp.MustCompile(`(?i)<p[\s>]`)
	sentenceEnd   = regexp.MustCompile(`[.!?]+`)
	wordPattern   = regexp.MustCompile(`[a-zA-ZăâîșțĂÂÎȘȚ']+`)
	vowelSequence = regexp.MustCompile(`(?i)[aeiouyăâî]+`)
)

// Validator runs the full heuristic suite.
type Validator struct {
	duplicates DuplicateChecker
}

func NewValidator(duplicates DuplicateChecker) *Validator {
	return &Validator{duplicates: duplicates}
}

// Validate scores content for the given focus keyword (normally the
// product name). The weighted blend and the error-level issue list
// together decide validity.
func (v *Validator) Validate(content, keyword string) *Report {
	r := &Report{Components: map[string]int{}}
	plain := stripTags(content)

	r.Components["length"] = v.checkLength(plain, r)
	r.Components["claims"] = v.checkClaims(plain, r)
	r.Components["externalMentions"] = v.checkExternal(content, r)
	r.Components["readability"] = fleschScore(plain)
	r.Components["seo"] = v.checkSEO(content, plain, keyword, r)
	r.Components["duplicates"] = v.checkDuplicates(plain, r)

	r.Score = (r.Components["length"]*weightLength +
		r.Components["claims"]*weightClaims +
		r.Components["externalMentions"]*weightExternal +
		r.Components["readability"]*weightReadable +
		r.Components["seo"]*weightSEO +
		r.Components["duplicates"]*weightDuplicates) / 100

	r.Valid = r.Score >= minValidScore && !hasError(r.Issues)
	return r
}

func hasError(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func stripTags(s string) string {
	return strings.TrimSpace(htmlTag.ReplaceAllString(s, " "))
}

// checkLength fits the text into the target band. Violations are warnings
// only; short text still drags the blended score down.
func (v *Validator) checkLength(plain string, r *Report) int {
	n := len(plain)
	switch {
	case n >= minLength && n <= maxLength:
		return 100
	case n < minLength:
		r.Issues = append(r.Issues, Issue{
			Severity:  SeverityWarning,
			Component: "length",
			Message:   fmt.Sprintf("content is %d characters, below the %d minimum", n, minLength),
		})
		if n <= 0 {
			return 0
		}
		return n * 100 / minLength
	default:
		r.Issues = append(r.Issues, Issue{
			Severity:  SeverityWarning,
			Component: "length",
			Message:   fmt.Sprintf("content is %d characters, above the %d maximum", n, maxLength),
		})
		return 70
	}
}

func (v *Validator) checkClaims(plain string, r *Report) int {
	score := 100
	for _, p := range misleadingPatterns {
		if m := p.FindString(plain); m != "" {
			score -= 35
			r.Issues = append(r.Issues, Issue{
				Severity:  SeverityError,
				Component: "claims",
				Message:   fmt.Sprintf("misleading claim: %q", truncate(m, 60)),
			})
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

func (v *Validator) checkExternal(content string, r *Report) int {
	lower := strings.ToLower(content)
	score := 100

	for _, name := range competitorNames {
		if strings.Contains(lower, name) {
			score = 0
			r.Issues = append(r.Issues, Issue{
				Severity:  SeverityError,
				Component: "externalMentions",
				Message:   fmt.Sprintf("competitor mention: %q", name),
			})
		}
	}

	for _, m := range externalDomain.FindAllStringSubmatch(content, -1) {
		if !ownDomains[strings.ToLower(m[1])] {
			score = 0
			r.Issues = append(r.Issues, Issue{
				Severity:  SeverityError,
				Component: "externalMentions",
				Message:   fmt.Sprintf("external link to %q", m[1]),
			})
		}
	}
	return score
}

// fleschScore is a rough reading-ease approximation mapped onto 0-100.
// Syllables are estimated as vowel groups, which is wrong often enough
// that the component only carries 10% of the blend.
func fleschScore(plain string) int {
	words := wordPattern.FindAllString(plain, -1)
	if len(words) < 40 {
		// Not enough text to rate.
		return 30
	}
	sentences := len(sentenceEnd.FindAllString(plain, -1))
	if sentences == 0 {
		sentences = 1
	}
	syllables := 0
	for _, w := range words {
		n := len(vowelSequence.FindAllString(w, -1))
		if n == 0 {
			n = 1
		}
		syllables += n
	}

	flesch := 206.835 -
		1.015*float64(len(words))/float64(sentences) -
		84.6*float64(syllables)/float64(len(words))

	switch {
	case flesch >= 60:
		return 100
	case flesch >= 50:
		return 85
	case flesch >= 30:
		return 70
	case flesch >= 10:
		return 50
	default:
		return 30
	}
}

// checkSEO covers keyword density bounds and structural counts.
func (v *Validator) checkSEO(content, plain, keyword string, r *Report) int {
	score := 100

	headings := len(headingTag.FindAllString(content, -1))
	if headings < 2 {
		score -= 20
		r.Issues = append(r.Issues, Issue{
			Severity:  SeverityWarning,
			Component: "seo",
			Message:   fmt.Sprintf("only %d headings, want at least 2", headings),
		})
	}

	paragraphs := len(paragraphTag.FindAllString(content, -1))
	if paragraphs < 3 {
		score -= 15
		r.Issues = append(r.Issues, Issue{
			Severity:  SeverityWarning,
			Component: "seo",
			Message:   fmt.Sprintf("only %d paragraphs, want at least 3", paragraphs),
		})
	}

	if keyword != "" {
		density := KeywordDensity(plain, keyword)
		switch {
		case density == 0:
			score -= 30
			r.Issues = append(r.Issues, Issue{
				Severity:  SeverityWarning,
				Component: "seo",
				Message:   fmt.Sprintf("keyword %q never appears", keyword),
			})
		case density > 4.0:
			score -= 20
			r.Issues = append(r.Issues, Issue{
				Severity:  SeverityWarning,
				Component: "seo",
				Message:   fmt.Sprintf("keyword %q density %.1f%% reads as stuffing", keyword, density),
			})
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}

// KeywordDensity returns keyword occurrences per hundred words.
func KeywordDensity(plain, keyword string) float64 {
	words := wordPattern.FindAllString(plain, -1)
	if len(words) == 0 || keyword == "" {
		return 0
	}
	count := strings.Count(strings.ToLower(plain), strings.ToLower(keyword))
	return float64(count) * 100 / float64(len(words))
}

// checkDuplicates probes existing blogs for a literal mid-article snippet.
// A database failure is logged and treated as no duplicate: the check is
// advisory and must not block generation.
func (v *Validator) checkDuplicates(plain string, r *Report) int {
	if v.duplicates == nil || len(plain) < 300 {
		return 100
	}

	// A snippet from the middle of the article avoids boilerplate intros.
	mid := len(plain) / 2
	snippet := plain[mid : mid+120]

	found, err := v.duplicates.ContainsSnippet(snippet)
	if err != nil {
		slog.Warn("duplicate check failed", "error", err)
		return 100
	}
	if found {
		r.Issues = append(r.Issues, Issue{
			Severity:  SeverityWarning,
			Component: "duplicates",
			Message:   "content overlaps an existing blog",
		})
		return 0
	}
	return 100
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
