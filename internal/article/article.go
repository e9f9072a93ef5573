package article

import "time"

// Article is the normalized record produced per feed entry, ready for
// ranking and rendering. URL is the identity key for deduplication.
// An empty ImageURL means no image was found; validation guarantees a
// non-empty value is a well-formed http(s) URL.
type Article struct {
	Title          string
	Summary        string
	URL            string
	ImageURL       string
	Category       string
	Style          string
	Source         string
	Published      time.Time
	Headline       string
	Score          int
	TechImportance int
}

// DisplayTitle returns the rewritten headline when one exists, otherwise
// the original title.
func (a Article) DisplayTitle() string {
	if a.Headline != "" {
		return a.Headline
	}
	return a.Title
}

// Dedupe removes articles whose URL was already seen, keeping the first
// occurrence and preserving input order.
func Dedupe(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}
