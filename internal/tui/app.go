package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/malbright/frontpage/internal/article"
	"github.com/malbright/frontpage/internal/browser"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

// Loader produces the ranked batch for the preview, typically a pipeline
// run. It executes asynchronously behind the spinner.
type Loader func() ([]article.Article, []string, error)

type batchLoadedMsg struct {
	articles []article.Article
	warnings []string
}

type loadErrMsg struct {
	err error
}

type openErrMsg struct {
	err error
}

// App is the preview model: a ranked article list on the left and a
// detail pane on the right.
type App struct {
	load     Loader
	rankKey  string
	articles []article.Article
	warnings []string

	cursor       int
	focus        focusPane
	detailScroll int
	loading      bool
	spinner      spinner.Model
	err          error

	width  int
	height int
}

func NewApp(load Loader, rankKey string) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		load:    load,
		rankKey: rankKey,
		spinner: sp,
		loading: true,
	}
}

// Run launches the preview and blocks until it exits.
func Run(load Loader, rankKey string) error {
	p := tea.NewProgram(NewApp(load, rankKey), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a *App) loadCmd() tea.Cmd {
	load := a.load
	return func() tea.Msg {
		articles, warnings, err := load()
		if err != nil {
			return loadErrMsg{err: err}
		}
		return batchLoadedMsg{articles: articles, warnings: warnings}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case batchLoadedMsg:
		a.loading = false
		a.articles = msg.articles
		a.warnings = msg.warnings
		a.cursor = 0
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return a, tea.Quit
	case "tab":
		if a.focus == focusList {
			a.focus = focusDetail
		} else {
			a.focus = focusList
		}
		return a, nil
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.detailScroll = 0
		} else if a.focus == focusDetail {
			a.detailScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.detailScroll = 0
		} else if a.focus == focusDetail && a.detailScroll > 0 {
			a.detailScroll--
		}
		return a, nil
	case "g":
		a.cursor = 0
		a.detailScroll = 0
		return a, nil
	case "G":
		if len(a.articles) > 0 {
			a.cursor = len(a.articles) - 1
			a.detailScroll = 0
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(a.articles) {
			return a, openBrowserCmd(a.articles[a.cursor].URL)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("frontpage")
	}

	header := a.renderHeader()
	status := a.renderStatus()
	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(status) - 2 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	if a.loading {
		body := lipglossCenter(a.spinner.View()+" Fetching feeds...", a.width, contentHeight)
		return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
	}

	listWidth := int(float64(a.width) * 0.4)
	detailWidth := a.width - listWidth - 4 // borders + gap

	listPane := listPaneStyle
	detailPane := detailPaneStyle
	if a.focus == focusList {
		listPane = listPaneActiveStyle
	} else {
		detailPane = detailPaneActiveStyle
	}

	var current *article.Article
	if a.cursor < len(a.articles) {
		current = &a.articles[a.cursor]
	}

	list := listPane.Width(listWidth).Height(contentHeight).
		Render(renderList(a.articles, a.cursor, contentHeight, listWidth-2))
	detail := detailPane.Width(detailWidth).Height(contentHeight).
		Render(renderDetail(current, a.cursor, detailWidth-2, contentHeight, a.detailScroll))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("frontpage preview")
	right := headerMetaStyle.Render(fmt.Sprintf("%d articles · ranked by %s", len(a.articles), a.rankKey))
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

func (a *App) renderStatus() string {
	hints := "j/k move  tab pane  o open  q quit"
	if a.err != nil {
		return statusBarStyle.Width(a.width).Render("error: " + a.err.Error())
	}
	if len(a.warnings) > 0 {
		hints += fmt.Sprintf("  ·  %d feed warning(s)", len(a.warnings))
	}
	return statusBarStyle.Width(a.width).Render(hints)
}
