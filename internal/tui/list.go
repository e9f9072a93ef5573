package tui

import (
	"fmt"
	"strings"

	"github.com/malbright/frontpage/internal/article"
)

func renderListItem(a article.Article, rank int, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	prefix := fmt.Sprintf("%2d ", rank)
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + prefix + truncateStr(a.DisplayTitle(), width-len(prefix)-4))
	} else {
		title = itemTitleStyle.Render("  " + prefix + truncateStr(a.DisplayTitle(), width-len(prefix)-4))
	}

	meta := "     " + itemSourceStyle.Render(a.Source) + itemMetaStyle.Render(fmt.Sprintf(" · %s · score %d", a.Category, a.Score))

	return title + "\n" + meta
}

func renderList(articles []article.Article, cursor int, height int, width int) string {
	if len(articles) == 0 {
		return lipglossCenter("No articles", width, height)
	}

	// Each item renders as 2 lines plus a blank line
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i+1, i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
