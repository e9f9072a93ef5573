package rank

import (
	"sort"

	"github.com/malbright/frontpage/internal/article"
)

// Ranking keys. A run sorts by exactly one of these.
const (
	ByDate  = "date"
	ByScore = "score"
)

// Sort orders articles descending by the chosen key. The sort is stable:
// ties keep their input order.
func Sort(articles []article.Article, key string) {
	switch key {
	case ByScore:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Score > articles[j].Score
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Published.After(articles[j].Published)
		})
	}
}

// Page is the front-page layout: one main slot plus N columns.
type Page struct {
	Main    *article.Article
	Columns [][]article.Article
}

// Paginate assigns the top-ranked article to the main slot and splits the
// remainder into n contiguous chunks of ceil(len/n), in rank order. The
// partition is deterministic, not a round-robin interleave.
func Paginate(ranked []article.Article, n int) Page {
	if n <= 0 {
		n = 1
	}
	page := Page{Columns: make([][]article.Article, n)}
	if len(ranked) == 0 {
		return page
	}

	page.Main = &ranked[0]
	rest := ranked[1:]
	if len(rest) == 0 {
		return page
	}

	chunk := (len(rest) + n - 1) / n
	for i := 0; i < n; i++ {
		start := i * chunk
		if start >= len(rest) {
			break
		}
		end := start + chunk
		if end > len(rest) {
			end = len(rest)
		}
		page.Columns[i] = rest[start:end]
	}
	return page
}
