package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malbright/frontpage/internal/article"
)

func renderDetail(a *article.Article, rank int, width, height, scroll int) string {
	if a == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	headline := detailTitleStyle.Width(contentWidth).Render(a.DisplayTitle())

	meta := detailSourceStyle.Render(fmt.Sprintf("#%d · %s · %s · %s",
		rank+1, a.Source, a.Category, a.Published.Format("Jan 2, 2006 15:04")))

	var sections []string
	sections = append(sections, headline, meta)

	if a.Headline != "" && a.Headline != a.Title {
		sections = append(sections,
			detailLabelStyle.Render("original: ")+detailBodyStyle.Render(truncateStr(a.Title, contentWidth-10)))
	}
	sections = append(sections,
		detailLabelStyle.Render(fmt.Sprintf("score %d · tech %d", a.Score, a.TechImportance)))

	sections = append(sections, "",
		detailBodyStyle.Width(contentWidth).Render(wrapText(a.Summary, contentWidth)))

	if a.ImageURL != "" {
		sections = append(sections, "",
			detailLabelStyle.Render("image: ")+detailLinkStyle.Render(truncateStr(a.ImageURL, contentWidth-8)))
	}
	sections = append(sections, "",
		detailLinkStyle.Width(contentWidth).Render("Read more: "+a.URL))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
