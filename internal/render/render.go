package render

import (
	"embed"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/rank"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

// Data is the flat slot mapping handed to the template: the main
// headline, the layout columns, and the full batch grouped by category.
type Data struct {
	Main        *article.Article
	Columns     [][]article.Article
	ByCategory  map[string][]article.Article
	Categories  []string
	GeneratedAt time.Time
}

// BuildData assembles template data from a paginated layout and the full
// ranked batch. Categories are listed alphabetically for stable output.
func BuildData(page rank.Page, all []article.Article, now time.Time) Data {
	byCategory := make(map[string][]article.Article)
	for _, a := range all {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return Data{
		Main:        page.Main,
		Columns:     page.Columns,
		ByCategory:  byCategory,
		Categories:  categories,
		GeneratedAt: now,
	}
}

// Renderer executes a single page template.
type Renderer struct {
	tmpl *template.Template
}

// New loads the template at path, or the embedded default when path is
// empty.
func New(path string) (*Renderer, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if path == "" {
		tmpl, err = template.ParseFS(templateFS, "templates/index.html.tmpl")
	} else {
		tmpl, err = template.ParseFiles(path)
	}
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, data Data) error {
	return r.tmpl.Execute(w, data)
}
