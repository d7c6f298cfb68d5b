package generator

import (
	"strings"
	"testing"
)

func TestParseListJSONArray(t *testing.T) {
	text := `Here are your titles:
["How Creatine Improves Strength Training Results", "5 Creatine Myths Every Athlete Should Ignore"]`

	got := ParseList(text)
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2: %v", len(got), got)
	}
	if got[0] != "How Creatine Improves Strength Training Results" {
		t.Errorf("got[0] = %q", got[0])
	}
}

func TestParseListFallbackLines(t *testing.T) {
	text := `Sure, titles:

1. How Creatine Improves Strength Training Results
2) **5 Creatine Myths Every Athlete Should Ignore**
- "Is Creatine Safe for Everyday Use by Adults?"
short
` + strings.Repeat("x", 130)

	got := ParseList(text)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3: %v", len(got), got)
	}
	for _, item := range got {
		if strings.ContainsAny(item, `"*`) {
			t.Errorf("cleanup left markup in %q", item)
		}
		if n := len(item); n < 20 || n > 120 {
			t.Errorf("item length %d outside band: %q", n, item)
		}
	}
}

func TestParseListEmpty(t *testing.T) {
	if got := ParseList("I cannot help."); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestParseListMalformedJSONFallsBack(t *testing.T) {
	text := `[not json at all
But This Line Is Long Enough To Be A Title Candidate`

	got := ParseList(text)
	if len(got) == 0 {
		t.Fatal("fallback produced nothing")
	}
}

func TestDedupeTitles(t *testing.T) {
	got := dedupeTitles([]string{
		"Best Whey Protein Guide for Beginners",
		"Best Whey Protein Guide for Beginners",
		"best whey protein guide for beginners!",
		"5 Creatine Myths Every Athlete Should Ignore",
	})

	if len(got) != 2 {
		t.Fatalf("got %d items, want 2: %v", len(got), got)
	}
	if got[0] != "Best Whey Protein Guide for Beginners" {
		t.Errorf("got[0] = %q, want first occurrence kept", got[0])
	}
	if got[1] != "5 Creatine Myths Every Athlete Should Ignore" {
		t.Errorf("got[1] = %q", got[1])
	}
}

func TestScoreTitle(t *testing.T) {
	strong := ScoreTitle("7 Proven Creatine Benefits for Strength Athletes?", "Creatine")
	weak := ScoreTitle("creatine creatine creatine creatine", "Creatine")

	if strong <= weak {
		t.Errorf("strong title scored %d, weak %d", strong, weak)
	}
	if strong > 100 {
		t.Errorf("score %d exceeds 100", strong)
	}
}
