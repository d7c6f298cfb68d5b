// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator turns model output into persisted titles and articles.
// The parsing here is best-effort over free-form LLM text and is kept
// behind narrow functions so the heuristics can change without touching
// the orchestration.
package generator

import (
	"encoding/json"
	"regexp"
	"strings"
)

const (
	minTitleLen = 20
	maxTitleLen = 120
)

var (
	lineNumbering = regexp.MustCompile(`^\s*\d+\s*[.)\-:]\s*`)
	lineBullet    = regexp.MustCompile(`^\s*[-*•]\s*`)
)

// ParseList extracts a list of strings from model output. The happy path
// is a JSON array (the prompt asks for one); models that ignore the format
// get line-splitting with cleanup instead. Returns nil when nothing
// usable is found.
func ParseList(text string) []string {
	if items := parseJSONArray(text); len(items) > 0 {
		return items
	}
	return parseLines(text)
}

// parseJSONArray tries the first bracketed substring as a JSON string
// array.
func parseJSONArray(text string) []string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}

	var raw []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}

	var items []string
	for _, s := range raw {
		if s = cleanItem(s); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// parseLines salvages one item per line, dropping numbering, bullets and
// quoting, keeping lines inside the plausible title length band.
func parseLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = lineNumbering.ReplaceAllString(line, "")
		line = lineBullet.ReplaceAllString(line, "")
		line = cleanItem(line)
		if n := len(line); n >= minTitleLen && n <= maxTitleLen {
			items = append(items, line)
		}
	}
	return items
}

func cleanItem(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.ReplaceAll(s, "**", "")
	s = strings.TrimSuffix(strings.TrimSpace(s), ",")
	return strings.TrimSpace(s)
}
