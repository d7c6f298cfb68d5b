package hyperlink

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"nutripress/internal/models"
)

func item(t models.LinkTargetType, name, url string) models.LinkableItem {
	return models.LinkableItem{ID: uuid.New(), Type: t, Name: name, URL: url}
}

func TestDetectFindsProductMention(t *testing.T) {
	items := []models.LinkableItem{
		item(models.LinkTargetProduct, "Whey Protein Isolate", "/products/whey-protein-isolate"),
	}
	text := "Our Whey Protein Isolate dissolves fast and tastes clean."

	mentions := Detect(text, items, nil, DefaultOptions())
	if len(mentions) != 1 {
		t.Fatalf("got %d mentions, want 1", len(mentions))
	}
	m := mentions[0]
	if m.Text != "Whey Protein Isolate" {
		t.Errorf("matched text = %q", m.Text)
	}
	if m.Offset != strings.Index(text, "Whey") {
		t.Errorf("offset = %d", m.Offset)
	}
	if m.TargetType != models.LinkTargetProduct {
		t.Errorf("target type = %s", m.TargetType)
	}
}

func TestDetectVariants(t *testing.T) {
	items := []models.LinkableItem{
		item(models.LinkTargetProduct, "Whey-Protein Isolate", "/products/whey-protein-isolate"),
	}

	for _, text := range []string{
		"Try whey protein isolate for recovery.",
		"Try WHEY-PROTEIN ISOLATE for recovery.",
		"Try Whey Protein   Isolate for recovery.",
	} {
		if got := Detect(text, items, nil, DefaultOptions()); len(got) != 1 {
			t.Errorf("Detect(%q) = %d mentions, want 1", text, len(got))
		}
	}
}

func TestDetectSkipsExistingMarkup(t *testing.T) {
	items := []models.LinkableItem{
		item(models.LinkTargetProduct, "Creatine", "/products/creatine"),
	}
	text := `See <a href="/products/creatine">Creatine</a> in the shop.`

	if got := Detect(text, items, nil, DefaultOptions()); len(got) != 0 {
		t.Fatalf("got %d mentions inside existing anchor, want 0", len(got))
	}
}

func TestDetectHonorsMaxLinks(t *testing.T) {
	items := []models.LinkableItem{
		item(models.LinkTargetProduct, "Creatine", "/products/creatine"),
		item(models.LinkTargetProduct, "Omega 3", "/products/omega-3"),
		item(models.LinkTargetCategory, "Vitamins", "/category/vitamins"),
	}
	text := "Creatine, Omega 3 and Vitamins all matter."

	got := Detect(text, items, nil, Options{MaxLinks: 2, MinDistance: 10})
	if len(got) != 2 {
		t.Fatalf("got %d mentions, want 2", len(got))
	}
}

func TestDetectCountsExistingTowardCap(t *testing.T) {
	items := []models.LinkableItem{
		item(models.LinkTargetProduct, "Creatine", "/products/creatine"),
	}
	existing := []Mention{{
		Text:       "Omega",
		TargetType: models.LinkTargetProduct,
		TargetID:   uuid.New(),
		URL:        "/products/omega-3",
		Offset:     0,
	}}
	text := "Omega and Creatine are staples."

	got := Detect(text, items, existing, Options{MaxLinks: 1, MinDistance: 10})
	if len(got) != 0 {
		t.Fatalf("got %d new mentions with cap already reached, want 0", len(got))
	}
}

func TestDetectMinDistanceBetweenRepeats(t *testing.T) {
	it := item(models.LinkTargetProduct, "Zinc", "/products/zinc")
	text := "Zinc here. Zinc again soon. " + strings.Repeat("filler ", 40) + "Zinc far away."

	got := Detect(text, []models.LinkableItem{it}, nil, Options{MaxLinks: 8, MinDistance: 100})
	if len(got) != 2 {
		t.Fatalf("got %d mentions, want first occurrence plus one distant repeat", len(got))
	}
	if got[1].Offset-got[0].Offset < 100 {
		t.Errorf("repeat at %d is within min distance of %d", got[1].Offset, got[0].Offset)
	}
}

func TestDetectPrefersLongerProductName(t *testing.T) {
	long := item(models.LinkTargetProduct, "Magnesium Citrate", "/products/magnesium-citrate")
	short := item(models.LinkTargetProduct, "Magnesium", "/products/magnesium")
	text := "Magnesium Citrate absorbs well."

	got := Detect(text, []models.LinkableItem{short, long}, nil, DefaultOptions())
	if len(got) == 0 {
		t.Fatal("no mentions")
	}
	if got[0].TargetID != long.ID {
		t.Errorf("matched the short name over the longer one")
	}
}

func TestInsertRewritesBackToFront(t *testing.T) {
	a := item(models.LinkTargetProduct, "Creatine", "/products/creatine")
	b := item(models.LinkTargetCategory, "Vitamins", "/category/vitamins")
	text := "Creatine pairs well with Vitamins."

	mentions := Detect(text, []models.LinkableItem{a, b}, nil, DefaultOptions())
	out := Insert(text, mentions)

	if !strings.Contains(out, `<a href="/products/creatine" data-link-type="product" data-link-id="`+a.ID.String()+`">Creatine</a>`) {
		t.Errorf("product anchor missing: %s", out)
	}
	if !strings.Contains(out, `<a href="/category/vitamins" data-link-type="category"`) {
		t.Errorf("category anchor missing: %s", out)
	}
	if strings.Count(out, "<a ") != 2 {
		t.Errorf("anchor count = %d", strings.Count(out, "<a "))
	}
}

func TestInsertSkipsStaleMention(t *testing.T) {
	text := "short"
	out := Insert(text, []Mention{{Text: "missing", Offset: 50, URL: "/x"}})
	if out != text {
		t.Errorf("stale mention changed text: %q", out)
	}
}

func TestScoreLinks(t *testing.T) {
	if got := ScoreLinks("no links here at all", DefaultOptions()); got != 40 {
		t.Errorf("unlinked text score = %d, want 40", got)
	}

	linked := `Intro. <a href="/a">one</a> ` + strings.Repeat("x ", 200) +
		`<a href="/b">two</a> ` + strings.Repeat("y ", 200) + `<a href="/c">three</a>.`
	if got := ScoreLinks(linked, DefaultOptions()); got != 100 {
		t.Errorf("well-spaced links score = %d, want 100", got)
	}

	spam := strings.Repeat(`<a href="/same">x</a> `, 12)
	if got := ScoreLinks(spam, DefaultOptions()); got >= 50 {
		t.Errorf("spammy links score = %d, want < 50", got)
	}
}
