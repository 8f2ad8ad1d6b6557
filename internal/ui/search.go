package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/search"
)

// handleSearchInputKey processes keys while the query field has focus.
func (m Model) handleSearchInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.searchInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.nextView())
	case key.Matches(msg, m.keys.Confirm):
		return m.openSearchResult()
	case key.Matches(msg, m.keys.CycleSortInput):
		return m.cycleSort()
	case msg.Type == tea.KeyUp:
		m.moveSearchRow(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveSearchRow(1)
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}

	generation, debounce := m.search.Input(m.searchInput.Value())
	if !debounce {
		m.searchRow = 0
		return m, cmd
	}
	return m, tea.Batch(cmd, debounceCmd(generation))
}

// handleSearchKey processes keys for the search view once the query field
// has been left.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.search.Results())

	switch {
	case key.Matches(msg, m.keys.FocusInput):
		cmd := m.searchInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.moveSearchRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSearchRow(1)
	case key.Matches(msg, m.keys.Top):
		m.searchRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.searchRow = max(count-1, 0)
	case key.Matches(msg, m.keys.Confirm):
		return m.openSearchResult()
	case key.Matches(msg, m.keys.CycleSort):
		return m.cycleSort()
	}
	return m, nil
}

func (m *Model) moveSearchRow(delta int) {
	count := len(m.search.Results())
	if count == 0 {
		m.searchRow = 0
		return
	}
	m.searchRow = min(max(m.searchRow+delta, 0), count-1)
}

// openSearchResult opens the selected result with the displayed results as
// its neighbors.
func (m Model) openSearchResult() (tea.Model, tea.Cmd) {
	results := m.search.Results()
	if len(results) == 0 {
		return m, nil
	}
	row := min(m.searchRow, len(results)-1)
	return m.openDetail(results[row].ID, catalog.NeighborsFromSummaries(results))
}

// cycleSort moves to the next sort order and remembers it.
func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	next := m.search.Sort().Next()
	m.search.SetSort(next)
	flash := m.setFlash("Sort: " + next.Label())
	return m, tea.Batch(flash, m.savePrefs())
}

// renderSearch renders the search view.
func (m Model) renderSearch() string {
	width := m.width
	height := m.contentHeight()
	innerWidth := max(width-2, 1)
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	lines := []string{
		bg.Space() + m.searchInput.View(),
		"",
		bg.Space() + m.searchStatusLine(styles, bg),
		"",
	}

	results := m.search.Results()
	for i, item := range results {
		lines = append(lines, m.formatSearchRow(item, innerWidth, i == m.searchRow))
	}

	title := "Search · " + m.search.Sort().Label()
	return m.renderTitledBox(title, strings.Join(lines, "\n"), width, height, true)
}

// searchStatusLine describes the search lifecycle below the query field.
func (m Model) searchStatusLine(styles Styles, bg BgStyle) string {
	switch m.search.State() {
	case search.StateDebouncing:
		return bg.Render("...", styles.FaintText)
	case search.StateLoading:
		query := truncate(m.search.Text(), 30)
		return m.spinner.View() + bg.Space() + bg.Render(fmt.Sprintf("Searching for %q", query), styles.MutedText)
	case search.StateErrored:
		return bg.Render(m.search.Err(), styles.DangerText)
	case search.StateReady:
		count := len(m.search.Results())
		if count == 0 {
			return bg.Render("No characters found.", styles.WarningText)
		}
		return bg.Render(fmt.Sprintf("%d %s", count, plural(count, "result")), styles.SuccessText) +
			bg.Render(" · enter to open · esc then o to change sort", styles.FaintText)
	default:
		return bg.Render("Start typing a character name.", styles.MutedText)
	}
}

// formatSearchRow renders one result line.
func (m Model) formatSearchRow(item catalog.CharacterSummary, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var nameStyle, countStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, countStyle = selText.Bold(true), selText
	} else {
		styles := m.theme.Styles()
		nameStyle, countStyle = styles.Text, styles.MutedText
	}

	counts := fmt.Sprintf("%s %s · %s %s",
		formatCount(item.Comics), plural(item.Comics, "comic"),
		formatCount(item.Events), plural(item.Events, "event"))
	nameWidth := max(width-lipgloss.Width(counts)-4, 10)
	name := padRight(truncate(item.Name, nameWidth), nameWidth)

	return bg.FillLine(bg.Space()+bg.Render(name, nameStyle)+bg.Spaces(2)+bg.Render(counts, countStyle), width)
}
