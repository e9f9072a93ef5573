package feed

import (
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/config"
	"github.com/malbright/frontpage/internal/imageurl"
)

// Placeholder values for entries missing a field. Missing data is not an
// error; the record is filled and processing continues.
const (
	placeholderTitle   = "No Title Provided"
	placeholderSummary = "No Summary Available"
	placeholderURL     = "#"
)

const summaryMaxLen = 300

var imgSrcRegexp = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"'>]+)["']`)

// Extract builds the normalized Article for one feed entry. The image is
// resolved through an ordered fallback chain and then cleaned under the
// given policy; every step failing leaves ImageURL empty.
func Extract(item *gofeed.Item, source config.Source, policy imageurl.Policy, now time.Time) article.Article {
	title := item.Title
	if title == "" {
		title = placeholderTitle
	}

	rawSummary := item.Description
	if rawSummary == "" {
		rawSummary = item.Content
	}

	link := item.Link
	if link == "" {
		link = placeholderURL
	}

	published := now
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	summary := truncate(stripHTML(rawSummary), summaryMaxLen)
	if summary == "" {
		summary = placeholderSummary
	}

	style := source.Style
	if style == "" {
		style = "normal"
	}

	return article.Article{
		Title:     title,
		Summary:   summary,
		URL:       link,
		ImageURL:  imageurl.Clean(extractImage(item, rawSummary), policy),
		Category:  source.Category,
		Style:     style,
		Source:    source.Name,
		Published: published,
	}
}

// extractImage tries, in strict order: media:content, media:thumbnail,
// image enclosures, an <img> inside the summary HTML, and finally an
// <img> inside the content block.
func extractImage(item *gofeed.Item, rawSummary string) string {
	if url := mediaExtensionURL(item, "content"); url != "" {
		return url
	}
	if url := mediaExtensionURL(item, "thumbnail"); url != "" {
		return url
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if url := firstImgSrc(rawSummary); url != "" {
		return url
	}
	return firstImgSrc(item.Content)
}

// mediaExtensionURL reads the url attribute of the first media:<name>
// element, e.g. <media:content url="...">.
func mediaExtensionURL(item *gofeed.Item, name string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[name] {
		if url := ext.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

func firstImgSrc(fragment string) string {
	if fragment == "" {
		return ""
	}
	match := imgSrcRegexp.FindStringSubmatch(fragment)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// stripHTML reduces an HTML fragment to its text content, collapsing
// whitespace. Malformed markup degrades to whatever text the tokenizer
// can recover.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
