// Package tui provides an interactive browser for search results.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gyf304/sqlite3-fts5-html/internal/core/domain"
	"github.com/gyf304/sqlite3-fts5-html/internal/core/ports/driving"
)

// ErrNoSearchService is reported when the browser has no search service.
var ErrNoSearchService = errors.New("search service not available")

// SearchCompleted carries the outcome of a search.
type SearchCompleted struct {
	Query   string
	Offset  int
	Results []domain.SearchResult
	Err     error
}

// resultItem adapts a search result to the list.
type resultItem struct {
	result domain.SearchResult
}

func (i resultItem) Title() string {
	if i.result.Document.Title != "" {
		return i.result.Document.Title
	}
	return i.result.Document.URI
}

func (i resultItem) Description() string {
	return fmt.Sprintf("%s (%g)", i.result.Document.URI, i.result.Score)
}

func (i resultItem) FilterValue() string { return i.result.Document.URI }

// Browser shows a query input, a list of results and the highlights and
// matches of the selected result.
type Browser struct {
	ctx    context.Context
	search driving.SearchService
	keys   KeyMap
	limit  int

	input    textinput.Model
	results  list.Model
	snippets viewport.Model

	query      string
	offset     int
	err        error
	focusInput bool
	width      int
	height     int

	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
	errStyle   lipgloss.Style
	paneStyle  lipgloss.Style
}

// NewBrowser creates a browser over search. A non-empty query is run when
// the program starts. limit is the page size; zero leaves it to the service.
func NewBrowser(ctx context.Context, search driving.SearchService, query string, limit int) *Browser {
	input := textinput.New()
	input.Placeholder = "Search..."
	input.Prompt = "> "
	input.SetValue(query)

	delegate := list.NewDefaultDelegate()
	results := list.New(nil, delegate, 0, 0)
	results.Title = "Results"
	results.SetShowHelp(false)
	results.SetFilteringEnabled(false)
	results.DisableQuitKeybindings()

	b := &Browser{
		ctx:        ctx,
		search:     search,
		keys:       DefaultKeyMap(),
		limit:      limit,
		input:      input,
		results:    results,
		snippets:   viewport.New(0, 0),
		query:      query,
		focusInput: query == "",
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		mutedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		errStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		paneStyle:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6C7086")),
	}
	if b.focusInput {
		b.input.Focus()
	}
	b.SetDimensions(80, 24)
	return b
}

// Init runs the initial query, if any.
func (b *Browser) Init() tea.Cmd {
	if b.query == "" {
		return textinput.Blink
	}
	return b.performSearch(b.query, 0)
}

// Update handles messages for the browser.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.SetDimensions(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		return b.handleKeyMsg(msg)

	case SearchCompleted:
		b.handleSearchCompleted(msg)
		return b, nil
	}

	var cmd tea.Cmd
	if b.focusInput {
		b.input, cmd = b.input.Update(msg)
	} else {
		b.results, cmd = b.results.Update(msg)
	}
	return b, cmd
}

func (b *Browser) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return b, tea.Quit
	}

	if b.focusInput {
		switch {
		case key.Matches(msg, b.keys.Submit):
			query := strings.TrimSpace(b.input.Value())
			if query == "" {
				return b, nil
			}
			b.setFocusInput(false)
			return b, b.performSearch(query, 0)
		case key.Matches(msg, b.keys.Back):
			if b.query != "" {
				b.input.SetValue(b.query)
				b.setFocusInput(false)
			}
			return b, nil
		}
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}

	switch {
	case key.Matches(msg, b.keys.Quit):
		return b, tea.Quit
	case key.Matches(msg, b.keys.Search):
		b.input.SetValue("")
		b.setFocusInput(true)
		return b, textinput.Blink
	case key.Matches(msg, b.keys.NextPage):
		if b.limit > 0 && len(b.results.Items()) == b.limit {
			return b, b.performSearch(b.query, b.offset+b.limit)
		}
		return b, nil
	case key.Matches(msg, b.keys.PrevPage):
		if b.limit > 0 && b.offset > 0 {
			return b, b.performSearch(b.query, max(b.offset-b.limit, 0))
		}
		return b, nil
	case key.Matches(msg, b.keys.ScrollUp), key.Matches(msg, b.keys.ScrollDn):
		var cmd tea.Cmd
		b.snippets, cmd = b.snippets.Update(msg)
		return b, cmd
	}

	before := b.results.Index()
	var cmd tea.Cmd
	b.results, cmd = b.results.Update(msg)
	if b.results.Index() != before {
		b.showSelected()
	}
	return b, cmd
}

func (b *Browser) setFocusInput(focus bool) {
	b.focusInput = focus
	if focus {
		b.input.Focus()
	} else {
		b.input.Blur()
	}
}

// performSearch returns a command that runs query at offset.
func (b *Browser) performSearch(query string, offset int) tea.Cmd {
	return func() tea.Msg {
		if b.search == nil {
			return SearchCompleted{Query: query, Offset: offset, Err: ErrNoSearchService}
		}
		results, err := b.search.Search(b.ctx, query, domain.SearchOptions{Limit: b.limit, Offset: offset})
		return SearchCompleted{Query: query, Offset: offset, Results: results, Err: err}
	}
}

func (b *Browser) handleSearchCompleted(msg SearchCompleted) {
	b.query = msg.Query
	if msg.Err != nil {
		b.err = msg.Err
		return
	}
	b.err = nil
	b.offset = msg.Offset

	items := make([]list.Item, len(msg.Results))
	for i := range msg.Results {
		items[i] = resultItem{result: msg.Results[i]}
	}
	b.results.SetItems(items)
	b.results.Select(0)
	b.results.Title = fmt.Sprintf("Results %d-%d", b.offset+min(1, len(items)), b.offset+len(items))
	b.showSelected()
}

// showSelected fills the snippet pane from the selected result.
func (b *Browser) showSelected() {
	b.snippets.SetContent(b.detail())
	b.snippets.GotoTop()
}

func (b *Browser) detail() string {
	r := b.SelectedResult()
	if r == nil {
		if b.query == "" {
			return ""
		}
		return b.mutedStyle.Render("No results found.")
	}

	var sb strings.Builder
	sb.WriteString(b.titleStyle.Render(resultItem{result: *r}.Title()))
	sb.WriteString("\n")
	sb.WriteString(b.mutedStyle.Render(r.Document.URI))
	sb.WriteString("\n\n")
	for _, h := range r.Highlights {
		sb.WriteString(h)
		sb.WriteString("\n\n")
	}
	if len(r.Matches) > 0 {
		sb.WriteString(b.mutedStyle.Render("Matches"))
		sb.WriteString("\n")
		for _, m := range r.Matches {
			fmt.Fprintf(&sb, "%6d %6d  %-16s %q\n", m.Start, m.End, m.Term, m.Original)
		}
	}
	return sb.String()
}

// View renders the browser.
func (b *Browser) View() string {
	sections := make([]string, 0, 4)
	sections = append(sections, b.input.View())

	if b.err != nil {
		sections = append(sections, b.errStyle.Render("Error: "+b.err.Error()))
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		b.paneStyle.Render(b.results.View()),
		b.paneStyle.Render(b.snippets.View()),
	)
	sections = append(sections, panes, b.mutedStyle.Render(b.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (b *Browser) helpLine() string {
	if b.focusInput {
		return "enter search • esc back • ctrl+c quit"
	}
	bindings := []key.Binding{
		b.keys.Search, b.keys.NextPage, b.keys.PrevPage,
		b.keys.ScrollDn, b.keys.Quit,
	}
	parts := make([]string, 0, len(bindings)+1)
	parts = append(parts, "↑/↓ select")
	for _, k := range bindings {
		parts = append(parts, k.Help().Key+" "+k.Help().Desc)
	}
	return strings.Join(parts, " • ")
}

// SetDimensions lays the panes out for a width x height terminal.
func (b *Browser) SetDimensions(width, height int) {
	b.width = width
	b.height = height

	// Input, help line and the pane borders.
	paneHeight := max(height-5, 3)
	listWidth := max(width*2/5-2, 10)
	snippetWidth := max(width-listWidth-4, 10)

	b.input.Width = max(width-4, 10)
	b.results.SetSize(listWidth, paneHeight)
	b.snippets.Width = snippetWidth
	b.snippets.Height = paneHeight
}

// Query returns the query of the results shown.
func (b *Browser) Query() string {
	return b.query
}

// Offset returns the offset of the page shown.
func (b *Browser) Offset() int {
	return b.offset
}

// Results returns the results shown.
func (b *Browser) Results() []domain.SearchResult {
	items := b.results.Items()
	out := make([]domain.SearchResult, 0, len(items))
	for _, it := range items {
		out = append(out, it.(resultItem).result)
	}
	return out
}

// SelectedIndex returns the index of the selected result.
func (b *Browser) SelectedIndex() int {
	return b.results.Index()
}

// SelectedResult returns the selected result, or nil when there is none.
func (b *Browser) SelectedResult() *domain.SearchResult {
	it, ok := b.results.SelectedItem().(resultItem)
	if !ok {
		return nil
	}
	return &it.result
}

// Snippets returns the content of the snippet pane.
func (b *Browser) Snippets() string {
	return b.detail()
}

// Err returns the last search error, if any.
func (b *Browser) Err() error {
	return b.err
}

// InputFocused reports whether keys go to the query input.
func (b *Browser) InputFocused() bool {
	return b.focusInput
}
