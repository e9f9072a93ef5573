package imageurl

import (
	"html"
	"strings"
)

// Policy selects how aggressively image URLs are filtered. Lenient keeps
// any http(s) URL; Strict additionally drops known placeholder patterns
// and URLs without a recognized image extension.
type Policy string

const (
	Lenient Policy = "lenient"
	Strict  Policy = "strict"
)

// Substrings that mark tracking pixels and placeholder images.
var blockedPatterns = []string{
	"1x1",
	"spacer.gif",
	"pixel.gif",
	"blank.gif",
	"data:image",
	"doubleclick.net",
	"feedburner.com/~ff",
}

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}

// Normalize cleans a raw image URL: HTML entities are unescaped,
// surrounding whitespace and quotes stripped, and protocol-relative URLs
// rewritten to https. Returns "" when nothing usable remains.
func Normalize(raw string) string {
	s := html.UnescapeString(raw)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "//") {
		s = "https:" + s
	}
	return s
}

// Valid reports whether a normalized URL passes the given policy.
// The empty string never passes.
func Valid(url string, policy Policy) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return false
	}
	if policy != Strict {
		return true
	}
	for _, p := range blockedPatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	// Ignore query string when checking the extension.
	path := lower
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Clean normalizes and validates in one step, returning "" for anything
// that does not survive the policy. A rejected URL is always absent,
// never a malformed string.
func Clean(raw string, policy Policy) string {
	url := Normalize(raw)
	if !Valid(url, policy) {
		return ""
	}
	return url
}
