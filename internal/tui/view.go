package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/igusev/sitesearch/internal/model"
	"github.com/igusev/sitesearch/internal/provider"
	"github.com/igusev/sitesearch/internal/search"
)

const (
	descriptionRunes = 100
	pageWindow       = 5
)

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Separator line (full width)
	if m.width > 0 {
		b.WriteString(m.styles.Help.Render(strings.Repeat("─", m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	if m.indexing {
		b.WriteString("  ")
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Help.Render(" Indexing site content..."))
	}
	b.WriteString("\n\n")

	switch m.state {
	case StateTyping:
		b.WriteString(m.renderSuggestions())
	case StateResults:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.helpText()))

	return b.String()
}

func (m Model) renderHeader() string {
	titleLeft := fmt.Sprintf("%s %s %s",
		m.colorScheme.BrandMark,
		m.styles.Title.Render("sitesearch"),
		m.styles.Version.Render(m.version))

	// Status indicator: ● active (green) or error (red), ○ idle
	var status string
	switch {
	case m.indexing || m.historyLoading:
		status = m.styles.StatusActive.Render("●")
	case m.indexErr != nil:
		status = m.styles.StatusError.Render("● search unavailable")
	default:
		status = m.styles.StatusIdle.Render("○")
	}

	leftWidth := lipgloss.Width(titleLeft)
	rightWidth := lipgloss.Width(status)
	spacing := " "
	if m.width > leftWidth+rightWidth {
		spacing = strings.Repeat(" ", m.width-leftWidth-rightWidth)
	}
	return titleLeft + spacing + status
}

// renderRow draws one list row with the cursor marker
func (m Model) renderRow(content string, selected bool) string {
	if selected {
		width := m.width - 2
		if width < 1 {
			width = 0
		}
		return m.styles.Cursor.Render("▌") + m.styles.Selected.Width(width).Render(" "+content) + "\n"
	}
	return "  " + m.styles.Normal.Render(content) + "\n"
}

func (m Model) renderSuggestions() string {
	query := strings.TrimSpace(m.suggestions.Query)

	if m.suggestions.Empty() {
		switch {
		case query == "":
			return ""
		case m.indexing:
			return m.styles.Help.Render("  Search is getting ready...") + "\n"
		default:
			return m.styles.Help.Render(fmt.Sprintf("  No quick matches for %q. Press enter to search everything.", query)) + "\n"
		}
	}

	var b strings.Builder
	i := 0
	lastKind := provider.SuggestionKind(-1)
	for _, item := range m.items {
		if item.Kind != lastKind {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(" " + m.groupHeading(item.Kind) + "\n")
			lastKind = item.Kind
		}

		var line string
		switch item.Kind {
		case provider.SuggestDocument:
			doc := item.Document
			line = doc.Type.Icon() + " " +
				renderSpans(doc.Title, query, lipgloss.NewStyle(), m.styles.Highlight) +
				"  " + m.styles.Category.Render(categoryLabel(doc))
		case provider.SuggestRecent:
			line = "↺ " + item.Term
		default:
			line = "↗ " + item.Term
		}

		b.WriteString(m.renderRow(line, i == m.cursor))
		i++
	}
	return b.String()
}

func (m Model) groupHeading(kind provider.SuggestionKind) string {
	switch kind {
	case provider.SuggestDocument:
		return m.styles.Group.Render("Suggestions")
	case provider.SuggestRecent:
		return m.styles.Group.Render("Recent searches") + m.styles.Help.Render("  ctrl+d clears")
	default:
		return m.styles.Group.Render("Popular searches")
	}
}

func (m Model) renderResults() string {
	var b strings.Builder

	visible := m.visible()
	page := search.Paginate(visible, m.page, m.perPage)

	fmt.Fprintf(&b, " %s %s %s\n",
		m.styles.Title.Render(fmt.Sprintf("Results for %q", m.query)),
		m.styles.CountActive.Render(formatNumber(page.Total)),
		m.styles.Count.Render("· "+m.sortMode.String()))

	b.WriteString(" " + m.renderTabs() + "\n\n")

	if page.Total == 0 {
		switch {
		case m.indexing:
			b.WriteString(m.styles.Help.Render("  Building the search index..."))
		case m.indexErr != nil:
			b.WriteString(m.styles.Help.Render("  Search is unavailable right now."))
		default:
			b.WriteString(m.styles.Normal.Render(fmt.Sprintf("  No results for %q.", m.query)))
			b.WriteString("\n")
			guidance := "  Check the spelling or try more general keywords."
			if m.FilterType() != "" && len(m.results) > 0 {
				guidance = fmt.Sprintf("  %d results in other types. Press tab to change the filter.", len(m.results))
			}
			b.WriteString(m.styles.Help.Render(guidance))
		}
		b.WriteString("\n")
		return b.String()
	}

	for i, doc := range page.Items {
		selected := i == m.resultCursor

		title := doc.Type.Icon() + " " +
			renderSpans(doc.Title, m.query, lipgloss.NewStyle(), m.styles.Highlight) +
			"  " + m.styles.Category.Render(categoryLabel(doc))
		if doc.HasDate() {
			title += m.styles.Help.Render("  " + doc.Date.Format("2 Jan 2006"))
		}
		b.WriteString(m.renderRow(title, selected))

		if doc.Description != "" {
			desc := truncateSnippet(doc.Description, descriptionRunes)
			b.WriteString("    " + renderSpans(desc, m.query, m.styles.Snippet, m.styles.Highlight) + "\n")
		}
		b.WriteString("    " + m.styles.URL.Render(doc.URL) + "\n")
	}

	b.WriteString("\n " + m.renderPagination(page) + "\n")
	return b.String()
}

// renderTabs draws the type filter with live counts
func (m Model) renderTabs() string {
	counts := search.CountByType(m.results)

	tabs := make([]string, 0, len(filterTypes))
	for i, t := range filterTypes {
		label := "All"
		count := len(m.results)
		if t != "" {
			label = t.Label()
			count = counts[t]
		}
		text := fmt.Sprintf("%s (%d)", label, count)

		switch {
		case i == m.filter:
			tabs = append(tabs, m.styles.TabActive.Render(text))
		case count == 0:
			tabs = append(tabs, m.styles.Disabled.Padding(0, 1).Render(text))
		default:
			tabs = append(tabs, m.styles.Tab.Render(text))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPagination draws prev/next and the page numbers around the current page
func (m Model) renderPagination(page search.Page) string {
	if page.TotalPages <= 1 {
		return m.styles.Help.Render(fmt.Sprintf("Page %d of %d", page.Number, max(page.TotalPages, 1)))
	}

	prev := m.styles.Tab.Render("‹ Prev")
	if !page.HasPrev() {
		prev = m.styles.Disabled.Padding(0, 1).Render("‹ Prev")
	}
	next := m.styles.Tab.Render("Next ›")
	if !page.HasNext() {
		next = m.styles.Disabled.Padding(0, 1).Render("Next ›")
	}

	parts := []string{prev}
	for _, n := range search.PageNumbers(page.Number, page.TotalPages, pageWindow) {
		if n == page.Number {
			parts = append(parts, m.styles.CountActive.Render(fmt.Sprintf("[%d]", n)))
			continue
		}
		parts = append(parts, m.styles.Count.Render(fmt.Sprintf("%d", n)))
	}
	parts = append(parts, next)
	return strings.Join(parts, " ")
}

func (m Model) helpText() string {
	switch m.state {
	case StateTyping:
		return "↑/↓: navigate • enter: open • ctrl+u: clear • esc: close"
	case StateResults:
		return "↑/↓: move • enter: open • tab: type • ctrl+s: sort • ←/→: page • esc: back"
	default:
		return "enter: search • ↓: suggestions • esc: quit"
	}
}

// renderSpans renders text with the query terms highlighted
func renderSpans(text, query string, base, highlight lipgloss.Style) string {
	var b strings.Builder
	for _, span := range search.Highlight(text, query) {
		if span.Match {
			b.WriteString(highlight.Render(span.Text))
			continue
		}
		b.WriteString(base.Render(span.Text))
	}
	return b.String()
}

// categoryLabel is the category when set, the type label otherwise
func categoryLabel(doc model.SearchDocument) string {
	if doc.Category != "" {
		return doc.Category
	}
	return doc.Type.Label()
}

// truncateSnippet truncates text at word boundary respecting UTF-8
func truncateSnippet(text string, maxRunes int) string {
	runes := []rune(text)

	if len(runes) <= maxRunes {
		return text
	}

	truncated := runes[:maxRunes]

	// Find last word boundary (space, comma, period, etc.)
	lastSpace := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		if unicode.IsSpace(truncated[i]) || truncated[i] == ',' || truncated[i] == '.' || truncated[i] == ';' {
			lastSpace = i
			break
		}
	}

	// Use word boundary if found in last 20% to avoid losing too much text
	if lastSpace > int(float64(maxRunes)*0.8) {
		truncated = truncated[:lastSpace]
	}

	return string(truncated) + "..."
}

func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%d,%03d", n/1000, n%1000)
}
