// Package tui is the interactive search screen: bar, suggestions and results
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/igusev/sitesearch/internal/history"
	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/provider"
	"github.com/igusev/sitesearch/internal/search"
)

// ResultsLimit is the number of results fetched for the results view
const ResultsLimit = search.MaxLimit

// State is the phase of one search interaction
type State int

const (
	// StateIdle shows the bar with suggestions closed
	StateIdle State = iota
	// StateTyping shows the suggestions panel under the bar
	StateTyping
	// StateResults shows the paginated results list
	StateResults
	// StateNavigated means a document was opened and the programme is exiting
	StateNavigated
)

func (s State) String() string {
	switch s {
	case StateTyping:
		return "typing"
	case StateResults:
		return "results"
	case StateNavigated:
		return "navigated"
	default:
		return "idle"
	}
}

// Searcher is the part of the search provider the UI talks to
// *provider.Provider implements it.
type Searcher interface {
	IsIndexing() bool
	Done() <-chan struct{}
	Err() error
	Search(query string, opts search.Options) []model.SearchDocument
	Suggest(query string) provider.Suggestions
	AddRecentSearch(query string)
	ClearRecentSearches()
}

// Options configures the search screen
type Options struct {
	Searcher     Searcher
	History      *history.History           // loaded in the background by Init when set
	InitialQuery string                     // submitted right away when not blank
	OnSubmit     func(query string) tea.Cmd // replaces the results view when set
	Version      string
	PerPage      int // results per page; <= 0 means search.DefaultPerPage
}

// IndexReadyMsg is sent when the index build has settled
type IndexReadyMsg struct {
	Err error
}

// HistoryLoadedMsg is sent when recent searches finish loading
type HistoryLoadedMsg struct {
	Err error
}

// filterTypes is the tab order of the type filter; "" means all types
var filterTypes = append([]model.DocumentType{""}, model.AllDocumentTypes()...)

// Model represents the TUI state
type Model struct {
	textInput   textinput.Model
	spinner     spinner.Model
	styles      Styles
	colorScheme *ColorScheme
	searcher    Searcher
	history     *history.History
	onSubmit    func(string) tea.Cmd
	version     string
	perPage     int

	state          State
	indexing       bool
	indexErr       error
	historyLoading bool
	pending        []string // recent searches recorded before history loaded
	clearPending   bool

	suggestions provider.Suggestions
	items       []provider.Suggestion
	cursor      int // highlighted suggestion, -1 for none

	query        string // last submitted query
	results      []model.SearchDocument
	filter       int // index into filterTypes
	sortMode     search.SortMode
	page         int
	resultCursor int

	selectedURL string
	width       int
	height      int
	quitting    bool
}

// New creates the search screen
func New(opts Options) Model {
	colorScheme := NewColorScheme()
	styles := colorScheme.GetStyles()

	ti := textinput.New()
	ti.Placeholder = "Search products, docs, blog..."
	ti.Focus()
	ti.CharLimit = history.MaxEntryRunes
	ti.Width = 50
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.Prompt

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusActive

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = search.DefaultPerPage
	}

	m := Model{
		textInput:      ti,
		spinner:        sp,
		styles:         styles,
		colorScheme:    colorScheme,
		searcher:       opts.Searcher,
		history:        opts.History,
		onSubmit:       opts.OnSubmit,
		version:        opts.Version,
		perPage:        perPage,
		state:          StateIdle,
		indexing:       opts.Searcher.IsIndexing(),
		historyLoading: opts.History != nil,
		cursor:         -1,
		page:           1,
	}

	if q := strings.TrimSpace(opts.InitialQuery); q != "" {
		m.textInput.SetValue(q)
		m.submit(q)
	}

	return m
}

// Init starts the background work: cursor blink, index wait and history load
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}

	if m.indexing {
		cmds = append(cmds, m.spinner.Tick, waitForIndex(m.searcher))
	}

	if m.history != nil {
		hist := m.history
		cmds = append(cmds, func() tea.Msg {
			err := <-hist.LoadAsync()
			return HistoryLoadedMsg{Err: err}
		})
	}

	return tea.Batch(cmds...)
}

func waitForIndex(s Searcher) tea.Cmd {
	return func() tea.Msg {
		<-s.Done()
		return IndexReadyMsg{Err: s.Err()}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateResults {
			return m.updateResults(msg)
		}
		return m.updateBar(msg)

	case IndexReadyMsg:
		m.indexing = false
		m.indexErr = msg.Err
		switch m.state {
		case StateTyping:
			m.refreshSuggestions()
		case StateResults:
			m.results = m.fetchResults(m.query)
			m.clampPage()
		}

	case HistoryLoadedMsg:
		// A failed load leaves an empty list; recent searches stay usable in memory
		m.historyLoading = false
		if m.clearPending {
			m.searcher.ClearRecentSearches()
			m.clearPending = false
		}
		for _, q := range m.pending {
			m.searcher.AddRecentSearch(q)
		}
		m.pending = nil
		if m.state == StateTyping {
			m.refreshSuggestions()
		}

	case spinner.TickMsg:
		if !m.indexing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 6; w > 20 {
			m.textInput.Width = w
		}
	}

	return m, nil
}

// updateBar handles keys while the bar (and possibly suggestions) has focus
func (m Model) updateBar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.state == StateTyping {
			m.closeSuggestions()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.state == StateTyping && m.cursor >= 0 && m.cursor < len(m.items) {
			return m.activate(m.items[m.cursor])
		}
		cmd := m.submit(m.textInput.Value())
		return m, cmd

	case "down", "ctrl+n":
		if m.state != StateTyping {
			m.openSuggestions()
			return m, nil
		}
		m.moveCursor(1)

	case "up", "ctrl+p":
		if m.state != StateTyping {
			m.openSuggestions()
			return m, nil
		}
		m.moveCursor(-1)

	case "ctrl+u":
		m.textInput.Reset()
		m.openSuggestions()
		cmd := m.textInput.Focus()
		return m, cmd

	case "ctrl+d":
		m.clearRecent()

	default:
		before := m.textInput.Value()
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		if m.textInput.Value() != before {
			m.openSuggestions()
		}
		return m, cmd
	}

	return m, nil
}

// updateResults handles keys in the results view
func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "/":
		m.state = StateIdle
		cmd := m.textInput.Focus()
		return m, cmd

	case "tab":
		m.cycleFilter(1)

	case "shift+tab":
		m.cycleFilter(-1)

	case "ctrl+s":
		m.sortMode = m.sortMode.Toggle()
		m.page = 1
		m.resultCursor = 0

	case "right", "pgdown":
		m.setPage(m.page + 1)

	case "left", "pgup":
		m.setPage(m.page - 1)

	case "down", "ctrl+n":
		if m.resultCursor < len(m.currentPage().Items)-1 {
			m.resultCursor++
		}

	case "up", "ctrl+p":
		if m.resultCursor > 0 {
			m.resultCursor--
		}

	case "enter":
		items := m.currentPage().Items
		if m.resultCursor < len(items) {
			return m.navigate(items[m.resultCursor])
		}

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		m.setPage(n)
	}

	return m, nil
}

func (m *Model) openSuggestions() {
	m.state = StateTyping
	m.refreshSuggestions()
}

func (m *Model) refreshSuggestions() {
	m.suggestions = m.searcher.Suggest(m.textInput.Value())
	m.items = m.suggestions.Items()
	m.cursor = -1
}

func (m *Model) closeSuggestions() {
	m.state = StateIdle
	m.items = nil
	m.cursor = -1
}

// moveCursor steps through suggestions with wraparound
func (m *Model) moveCursor(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	if m.cursor < 0 {
		if delta > 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

// submit records the query and shows its results (or hands it to OnSubmit)
// A blank query only closes the suggestions.
func (m *Model) submit(raw string) tea.Cmd {
	q := strings.TrimSpace(raw)
	if q == "" {
		m.closeSuggestions()
		return nil
	}

	m.textInput.SetValue(q)
	m.record(q)

	if m.onSubmit != nil {
		m.closeSuggestions()
		return m.onSubmit(q)
	}

	m.query = q
	m.results = m.fetchResults(q)
	m.state = StateResults
	m.items = nil
	m.cursor = -1
	m.filter = 0
	m.sortMode = search.SortRelevance
	m.page = 1
	m.resultCursor = 0
	m.textInput.Blur()
	return nil
}

// activate runs the action of a suggestion
func (m Model) activate(item provider.Suggestion) (tea.Model, tea.Cmd) {
	if item.Kind == provider.SuggestDocument {
		if q := strings.TrimSpace(m.textInput.Value()); q != "" {
			m.record(q)
		}
		return m.navigate(item.Document)
	}
	cmd := m.submit(item.Term)
	return m, cmd
}

func (m Model) navigate(doc model.SearchDocument) (tea.Model, tea.Cmd) {
	m.selectedURL = doc.URL
	m.state = StateNavigated
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) record(q string) {
	if m.historyLoading {
		m.pending = append(m.pending, q)
		return
	}
	m.searcher.AddRecentSearch(q)
}

func (m *Model) clearRecent() {
	m.searcher.ClearRecentSearches()
	m.pending = nil
	if m.historyLoading {
		m.clearPending = true
	}
	if m.state == StateTyping {
		m.refreshSuggestions()
	}
}

func (m *Model) fetchResults(q string) []model.SearchDocument {
	return m.searcher.Search(q, search.Options{Limit: ResultsLimit, Fuzzy: true})
}

// visible returns the filtered and sorted result list
func (m Model) visible() []model.SearchDocument {
	return search.SortResults(search.FilterByType(m.results, filterTypes[m.filter]), m.sortMode)
}

func (m Model) currentPage() search.Page {
	return search.Paginate(m.visible(), m.page, m.perPage)
}

func (m *Model) cycleFilter(delta int) {
	n := len(filterTypes)
	m.filter = ((m.filter+delta)%n + n) % n
	m.page = 1
	m.resultCursor = 0
}

// setPage moves to page n; out of range pages are ignored
func (m *Model) setPage(n int) {
	p := m.currentPage()
	if n < 1 || n > p.TotalPages || n == m.page {
		return
	}
	m.page = n
	m.resultCursor = 0
}

func (m *Model) clampPage() {
	m.page = m.currentPage().Number
	if n := len(m.currentPage().Items); m.resultCursor >= n {
		m.resultCursor = 0
	}
}

// State returns the current interaction phase
func (m Model) State() State {
	return m.state
}

// Query returns the last submitted query, or the bar text before any submit
func (m Model) Query() string {
	if m.query != "" {
		return m.query
	}
	return strings.TrimSpace(m.textInput.Value())
}

// SelectedURL returns the URL of the opened document (or empty string if none)
func (m Model) SelectedURL() string {
	return m.selectedURL
}

// FilterType returns the active results filter; empty means all types
func (m Model) FilterType() model.DocumentType {
	return filterTypes[m.filter]
}
