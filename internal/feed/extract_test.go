package feed

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/imageurl"
)

var testSource = config.Source{Name: "Test Wire", Category: "wall"}

func mediaExt(name, url string) ext.Extensions {
	return ext.Extensions{
		"media": {
			name: {{Name: name, Attrs: map[string]string{"url": url}}},
		},
	}
}

func TestExtractImageFallbackOrder(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		item *gofeed.Item
		want string
	}{
		{
			name: "media content wins over everything",
			item: &gofeed.Item{
				Extensions: ext.Extensions{
					"media": {
						"content":   {{Name: "content", Attrs: map[string]string{"url": "http://x.com/content.jpg"}}},
						"thumbnail": {{Name: "thumbnail", Attrs: map[string]string{"url": "http://x.com/thumb.jpg"}}},
					},
				},
				Description: `<img src="http://x.com/inline.jpg">`,
			},
			want: "http://x.com/content.jpg",
		},
		{
			name: "thumbnail when no media content",
			item: &gofeed.Item{
				Extensions:  mediaExt("thumbnail", "http://x.com/thumb.jpg"),
				Description: `<img src="http://x.com/inline.jpg">`,
			},
			want: "http://x.com/thumb.jpg",
		},
		{
			name: "image enclosure",
			item: &gofeed.Item{
				Enclosures: []*gofeed.Enclosure{
					{URL: "http://x.com/audio.mp3", Type: "audio/mpeg"},
					{URL: "http://x.com/enclosed.png", Type: "image/png"},
				},
			},
			want: "http://x.com/enclosed.png",
		},
		{
			name: "img tag in summary",
			item: &gofeed.Item{
				Description: `<p>text</p><img class="hero" src="http://x.com/inline.jpg" alt="">`,
			},
			want: "http://x.com/inline.jpg",
		},
		{
			name: "img tag in content block",
			item: &gofeed.Item{
				Content: `<div><img src='http://x.com/content-block.gif'/></div>`,
			},
			want: "http://x.com/content-block.gif",
		},
		{
			name: "no image source at all",
			item: &gofeed.Item{Title: "plain", Description: "no markup"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Extract(tt.item, testSource, imageurl.Lenient, now)
			if a.ImageURL != tt.want {
				t.Errorf("ImageURL = %q, want %q", a.ImageURL, tt.want)
			}
		})
	}
}

func TestExtractMissingImageIsAbsent(t *testing.T) {
	a := Extract(&gofeed.Item{Title: "t"}, testSource, imageurl.Lenient, time.Now())
	if a.ImageURL != "" {
		t.Errorf("expected absent image, got %q", a.ImageURL)
	}
}

func TestExtractPlaceholders(t *testing.T) {
	a := Extract(&gofeed.Item{}, testSource, imageurl.Lenient, time.Now())
	if a.Title != "No Title Provided" {
		t.Errorf("title placeholder = %q", a.Title)
	}
	if a.Summary != "No Summary Available" {
		t.Errorf("summary placeholder = %q", a.Summary)
	}
	if a.URL != "#" {
		t.Errorf("url placeholder = %q", a.URL)
	}
}

func TestExtractFields(t *testing.T) {
	pub := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := &gofeed.Item{
		Title:           "Markets tumble",
		Link:            "https://example.com/markets",
		Description:     "<p>Stocks <b>fell</b> sharply today.</p>",
		PublishedParsed: &pub,
	}

	a := Extract(item, testSource, imageurl.Lenient, time.Now())

	if a.Title != "Markets tumble" {
		t.Errorf("Title = %q", a.Title)
	}
	if a.Summary != "Stocks fell sharply today." {
		t.Errorf("Summary = %q", a.Summary)
	}
	if a.URL != "https://example.com/markets" {
		t.Errorf("URL = %q", a.URL)
	}
	if a.Category != "wall" {
		t.Errorf("Category = %q", a.Category)
	}
	if a.Source != "Test Wire" {
		t.Errorf("Source = %q", a.Source)
	}
	if a.Style != "normal" {
		t.Errorf("Style = %q", a.Style)
	}
	if !a.Published.Equal(pub) {
		t.Errorf("Published = %v, want %v", a.Published, pub)
	}
}

func TestExtractStrictPolicyDropsPlaceholderImage(t *testing.T) {
	item := &gofeed.Item{
		Description: `<img src="https://ads.example.com/spacer.gif">`,
	}
	if a := Extract(item, testSource, imageurl.Strict, time.Now()); a.ImageURL != "" {
		t.Errorf("strict policy kept %q", a.ImageURL)
	}
	if a := Extract(item, testSource, imageurl.Lenient, time.Now()); a.ImageURL == "" {
		t.Error("lenient policy should keep any http(s) image")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
		{`<a href="url">Link</a> text`, "Link text"},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.input); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"this is a long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestExtractStyle(t *testing.T) {
	item := &gofeed.Item{Title: "T", Link: "http://x.com/1"}

	a := Extract(item, testSource, imageurl.Lenient, time.Now())
	if a.Style != "normal" {
		t.Errorf("default Style = %q, want normal", a.Style)
	}

	styled := testSource
	styled.Style = "breaking"
	a = Extract(item, styled, imageurl.Lenient, time.Now())
	if a.Style != "breaking" {
		t.Errorf("Style = %q, want breaking", a.Style)
	}
}
