package quality

import (
	"errors"
	"strings"
	"testing"
)

type stubChecker struct {
	found bool
	err   error
}

func (s stubChecker) ContainsSnippet(string) (bool, error) { return s.found, s.err }

// goodArticle builds structurally sound content inside the length band.
func goodArticle(keyword string) string {
	var b strings.Builder
	b.WriteString("<h2>Why " + keyword + " matters</h2>")
	for i := 0; i < 6; i++ {
		b.WriteString("<p>Taking " + keyword + " daily supports training. ")
		b.WriteString(strings.Repeat("It is a simple habit that many people keep for years. ", 8))
		b.WriteString("</p>")
	}
	b.WriteString("<h2>How to use it</h2><p>Mix one scoop with water after training.</p>")
	return b.String()
}

func TestValidatePassesGoodContent(t *testing.T) {
	v := NewValidator(stubChecker{})
	r := v.Validate(goodArticle("creatine"), "creatine")

	if !r.Valid {
		t.Fatalf("good content invalid: score=%d issues=%v", r.Score, r.Issues)
	}
	if r.Score < 70 {
		t.Errorf("score = %d, want >= 70", r.Score)
	}
}

func TestValidateCompetitorMentionIsHardError(t *testing.T) {
	v := NewValidator(stubChecker{})
	content := strings.Replace(goodArticle("creatine"),
		"Mix one scoop", "Cheaper on amazon, but mix one scoop", 1)

	r := v.Validate(content, "creatine")

	if r.Components["externalMentions"] != 0 {
		t.Errorf("externalMentions = %d, want 0", r.Components["externalMentions"])
	}
	if r.Valid {
		t.Error("content with a competitor mention must be invalid")
	}
	if !hasError(r.Issues) {
		t.Error("expected an error-level issue")
	}
}

func TestValidateExternalLinkIsHardError(t *testing.T) {
	v := NewValidator(stubChecker{})
	content := goodArticle("zinc") + `<p>See <a href="https://example.com/study">this study</a>.</p>`

	r := v.Validate(content, "zinc")
	if r.Components["externalMentions"] != 0 || r.Valid {
		t.Errorf("external link not rejected: score=%d valid=%v", r.Score, r.Valid)
	}
}

func TestValidateMisleadingClaim(t *testing.T) {
	v := NewValidator(stubChecker{})
	content := strings.Replace(goodArticle("omega 3"),
		"supports training", "is guaranteed to deliver results and cures diabetes", 1)

	r := v.Validate(content, "omega 3")
	if r.Components["claims"] == 100 {
		t.Error("misleading claims not penalized")
	}
	if r.Valid {
		t.Error("false-promise content must be invalid")
	}
}

func TestValidateShortContentIsWarningOnly(t *testing.T) {
	v := NewValidator(stubChecker{})
	r := v.Validate("<p>Too short.</p>", "zinc")

	for _, i := range r.Issues {
		if i.Component == "length" && i.Severity != SeverityWarning {
			t.Errorf("length issue severity = %s, want warning", i.Severity)
		}
	}
	if r.Valid {
		t.Error("very short content should fail on score, not slip through")
	}
}

func TestValidateDuplicateContent(t *testing.T) {
	v := NewValidator(stubChecker{found: true})
	r := v.Validate(goodArticle("magnesium"), "magnesium")

	if r.Components["duplicates"] != 0 {
		t.Errorf("duplicates component = %d, want 0", r.Components["duplicates"])
	}
	if hasError(r.Issues) {
		t.Error("duplicate overlap must stay warning-level")
	}
}

func TestValidateDuplicateCheckFailureIsIgnored(t *testing.T) {
	v := NewValidator(stubChecker{err: errors.New("db down")})
	r := v.Validate(goodArticle("magnesium"), "magnesium")

	if r.Components["duplicates"] != 100 {
		t.Errorf("duplicates component = %d after store error, want 100", r.Components["duplicates"])
	}
}

func TestKeywordDensity(t *testing.T) {
	plain := "creatine helps. creatine works. water helps too."
	got := KeywordDensity(plain, "creatine")
	if got < 28 || got > 29 {
		t.Errorf("density = %.1f, want 2 hits in 7 words", got)
	}
	if KeywordDensity(plain, "") != 0 {
		t.Error("empty keyword should have zero density")
	}
}
