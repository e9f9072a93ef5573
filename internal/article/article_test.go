package article

import "testing"

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []Article{
		{Title: "first", URL: "https://example.com/a"},
		{Title: "second", URL: "https://example.com/b"},
		{Title: "duplicate of first", URL: "https://example.com/a"},
		{Title: "third", URL: "https://example.com/c"},
		{Title: "duplicate of second", URL: "https://example.com/b"},
	}

	out := Dedupe(in)

	if len(out) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(out))
	}
	seen := map[string]bool{}
	for _, a := range out {
		if seen[a.URL] {
			t.Errorf("duplicate URL survived dedup: %s", a.URL)
		}
		seen[a.URL] = true
	}
	// Stable: first occurrences in input order
	if out[0].Title != "first" || out[1].Title != "second" || out[2].Title != "third" {
		t.Errorf("unexpected order: %q, %q, %q", out[0].Title, out[1].Title, out[2].Title)
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestDisplayTitle(t *testing.T) {
	a := Article{Title: "plain title"}
	if got := a.DisplayTitle(); got != "plain title" {
		t.Errorf("expected original title, got %q", got)
	}
	a.Headline = "SHOCKING REWRITE"
	if got := a.DisplayTitle(); got != "SHOCKING REWRITE" {
		t.Errorf("expected headline, got %q", got)
	}
}
