// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package hyperlink

import "regexp"

var hrefAttr = regexp.MustCompile(`href="([^"]*)"`)

// ScoreLinks rates the internal linking of a finished article on a 0-100
// scale: link count relative to the cap, spread through the text, and no
// piling onto a single target.
func ScoreLinks(text string, opts Options) int {
	if opts.MaxLinks <= 0 {
		opts = DefaultOptions()
	}

	anchors := anchorSpan.FindAllStringIndex(text, -1)
	if len(anchors) == 0 {
		return 40 // readable but a missed opportunity
	}

	score := 100

	// Too many links reads like spam.
	if over := len(anchors) - opts.MaxLinks; over > 0 {
		score -= 15 * over
	}

	// Fewer than three links in a long article leaves score on the table.
	if len(text) > 2000 && len(anchors) < 3 {
		score -= 10 * (3 - len(anchors))
	}

	// Clustered links: penalize consecutive anchors closer than the
	// minimum distance.
	for i := 1; i < len(anchors); i++ {
		if anchors[i][0]-anchors[i-1][1] < opts.MinDistance/2 {
			score -= 5
		}
	}

	// Repeated targets beyond a single spaced repeat.
	seen := map[string]int{}
	for _, m := range hrefAttr.FindAllStringSubmatch(text, -1) {
		seen[m[1]]++
	}
	for _, n := range seen {
		if n > 2 {
			score -= 10 * (n - 2)
		}
	}

	if score < 0 {
		score = 0
	}
	return score
}
