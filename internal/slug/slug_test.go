package slug

import "testing"

// TestGenerate exercises the slug generator with typical product and
// article names, special characters, and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Whey Protein",
			want:  "whey-protein",
		},
		{
			name:  "product name with weight",
			input: "Ensure Chocolate 950g",
			want:  "ensure-chocolate-950g",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "Creatine",
			want:  "creatine",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Omega-3: What's the Deal?",
			want:  "omega-3-whats-the-deal",
		},
		{
			name:  "ampersand and percent",
			input: "Vitamins & Minerals 100%",
			want:  "vitamins-minerals-100",
		},
		{
			name:  "parentheses",
			input: "Magnesium (Citrate) 400mg",
			want:  "magnesium-citrate-400mg",
		},
		{
			name:  "non-ascii stripped",
			input: "Protéine de lactosérum",
			want:  "protine-de-lactosrum",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!!???",
			want:  "",
		},
		{
			name:  "leading and trailing spaces",
			input: "  Fish Oil  ",
			want:  "fish-oil",
		},
		{
			name:  "multiple inner spaces",
			input: "Fish    Oil",
			want:  "fish-oil",
		},
		{
			name:  "existing hyphens collapsed",
			input: "pre -- workout",
			want:  "pre-workout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{
			name:  "product category title",
			parts: []string{"Whey Protein", "Proteins", "Best Shake Recipes"},
			want:  "whey-protein-proteins-best-shake-recipes",
		},
		{
			name:  "empty parts skipped",
			parts: []string{"Whey Protein", "", "Recipes"},
			want:  "whey-protein-recipes",
		},
		{
			name:  "all empty",
			parts: []string{"", "!!!"},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.parts...); got != tt.want {
				t.Errorf("Join(%v) = %q, want %q", tt.parts, got, tt.want)
			}
		})
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("my-post", 0); got != "my-post" {
		t.Errorf("suffix 0 should return slug unchanged, got %q", got)
	}
	if got := WithSuffix("my-post", 2); got != "my-post-2" {
		t.Errorf("WithSuffix = %q, want my-post-2", got)
	}
}
