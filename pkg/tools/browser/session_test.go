package browser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSearchText(t *testing.T) {
	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		results := searchText("The Pandas library is great. pandas everywhere.", "pandas", false, 0)
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Text != "Pandas" {
			t.Errorf("expected original casing 'Pandas', got '%s'", results[0].Text)
		}
		if results[1].Text != "pandas" {
			t.Errorf("expected 'pandas', got '%s'", results[1].Text)
		}
	})

	t.Run("CaseSensitiveMatch", func(t *testing.T) {
		results := searchText("The Pandas library is great. pandas everywhere.", "pandas", true, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].Text != "pandas" {
			t.Errorf("expected 'pandas', got '%s'", results[0].Text)
		}
	})

	t.Run("WidthChangingFold", func(t *testing.T) {
		// U+023A is 2 bytes but its lowercase U+2C65 is 3, so offsets
		// from a lowered copy would run past the end of the original.
		results := searchText("Ⱥ qq", "qq", false, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].Text != "qq" {
			t.Errorf("expected 'qq', got '%s'", results[0].Text)
		}
		if !utf8.ValidString(results[0].Context) {
			t.Errorf("context is not valid UTF-8: %q", results[0].Context)
		}
	})

	t.Run("FoldedQueryMatchesOriginal", func(t *testing.T) {
		results := searchText("sections: Ⱥa and ⱥb", "ⱥa", false, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].Text != "Ⱥa" {
			t.Errorf("expected match against original text, got %q", results[0].Text)
		}
	})

	t.Run("Context", func(t *testing.T) {
		text := strings.Repeat("a", 100) + "needle" + strings.Repeat("b", 100)
		results := searchText(text, "needle", false, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		want := strings.Repeat("a", 50) + "needle" + strings.Repeat("b", 50)
		if results[0].Context != want {
			t.Errorf("unexpected context: %q", results[0].Context)
		}
	})

	t.Run("ContextOnRuneBoundaries", func(t *testing.T) {
		// A run of 3-byte runes around the match forces the 50-byte
		// context window to land mid-rune unless it is snapped.
		text := strings.Repeat("世", 40) + "needle" + strings.Repeat("界", 40)
		results := searchText(text, "needle", false, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if !utf8.ValidString(results[0].Context) {
			t.Errorf("context is not valid UTF-8: %q", results[0].Context)
		}
	})

	t.Run("MatchAtEnd", func(t *testing.T) {
		results := searchText("ends with needle", "NEEDLE", false, 0)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].Text != "needle" {
			t.Errorf("expected 'needle', got '%s'", results[0].Text)
		}
	})

	t.Run("MaxResults", func(t *testing.T) {
		results := searchText("x x x x x", "x", false, 3)
		if len(results) != 3 {
			t.Errorf("expected 3 results, got %d", len(results))
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if results := searchText("nothing here", "zebra", false, 0); results != nil {
			t.Errorf("expected no results, got %v", results)
		}
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		if results := searchText("some text", "", false, 0); results != nil {
			t.Errorf("expected no results, got %v", results)
		}
	})
}

func TestRuneBoundaryHelpers(t *testing.T) {
	// "é" is 2 bytes; byte 1 and 2 of text sit inside runes.
	text := "éé"

	t.Run("Floor", func(t *testing.T) {
		cases := []struct {
			pos  int
			want int
		}{
			{-5, 0},
			{0, 0},
			{1, 0},
			{2, 2},
			{3, 2},
			{4, 4},
			{10, 4},
		}
		for _, tc := range cases {
			if got := floorRune(text, tc.pos); got != tc.want {
				t.Errorf("floorRune(%d) = %d, want %d", tc.pos, got, tc.want)
			}
		}
	})

	t.Run("Ceil", func(t *testing.T) {
		cases := []struct {
			pos  int
			want int
		}{
			{0, 0},
			{1, 2},
			{2, 2},
			{3, 4},
			{4, 4},
			{10, 4},
		}
		for _, tc := range cases {
			if got := ceilRune(text, tc.pos); got != tc.want {
				t.Errorf("ceilRune(%d) = %d, want %d", tc.pos, got, tc.want)
			}
		}
	})
}
