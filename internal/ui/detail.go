package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/navigation"
)

// detailListLimit caps the related series and events listed in a detail.
const detailListLimit = 6

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.Type == tea.KeyBackspace:
		return m.switchView(m.returnView)

	case key.Matches(msg, m.keys.Previous):
		if entry, ok := m.nav.Previous(); ok {
			return m.openDetail(entry.ID, m.nav.List())
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if entry, ok := m.nav.Next(); ok {
			return m.openDetail(entry.ID, m.nav.List())
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyLink):
		c := m.nav.Detail()
		if c == nil {
			return m, nil
		}
		url := c.DetailURL()
		if url == "" {
			return m, m.setFlash("No marvel.com link for this character")
		}
		return m, copyCmd(m.copyFn, url)

	case key.Matches(msg, m.keys.Reload):
		if s := m.nav.State(); s == navigation.StateErrored || s == navigation.StateNotFound {
			return m.openDetail(m.nav.ID(), m.nav.List())
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// updateDetailViewport renders the loaded record into the viewport.
func (m *Model) updateDetailViewport() {
	if m.detailViewport.Width == 0 {
		return
	}
	c := m.nav.Detail()
	if c == nil {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detailViewport.SetContent(m.renderCharacter(*c, m.detailViewport.Width))
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	title := "Character"
	var body string
	switch m.nav.State() {
	case navigation.StateLoading:
		body = m.spinner.View() + bg.Space() +
			bg.Render(fmt.Sprintf("Loading character #%d...", m.nav.ID()), styles.MutedText)
	case navigation.StateNotFound:
		body = bg.Render(m.nav.Err(), styles.WarningText) + "\n\n" +
			bg.Render("esc to go back", styles.FaintText)
	case navigation.StateErrored:
		body = bg.Render(m.nav.Err(), styles.DangerText) + "\n\n" +
			bg.Render("r to retry · esc to go back", styles.FaintText)
	case navigation.StateReady:
		title = m.nav.Detail().Name
		body = m.detailViewport.View()
	}

	lines := strings.Split(body, "\n")
	for len(lines) < m.detailViewport.Height {
		lines = append(lines, "")
	}
	lines = append(lines, "", m.renderNeighborBar(m.width-4))

	for i, line := range lines {
		lines[i] = bg.Space() + line
	}

	if n := len(m.nav.List()); n > 0 {
		if idx := m.nav.List().IndexOf(m.nav.ID()); idx >= 0 {
			title = fmt.Sprintf("%s · %d of %d", title, idx+1, n)
		}
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

// renderNeighborBar shows the previous and next characters, or the neighbor
// repair in progress.
func (m Model) renderNeighborBar(width int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	if m.nav.Repairing() {
		return m.spinner.View() + bg.Space() + bg.Render("Finding neighbors...", styles.MutedText)
	}

	half := max(width/2-2, 8)
	left := bg.Render("[ start of list", styles.FaintText)
	if prev, ok := m.nav.Previous(); ok {
		left = bg.Render("[", styles.AccentText) + bg.Space() + bg.Render(truncate(prev.Name, half), styles.Text)
	}
	right := bg.Render("end of list ]", styles.FaintText)
	if next, ok := m.nav.Next(); ok {
		right = bg.Render(truncate(next.Name, half), styles.Text) + bg.Space() + bg.Render("]", styles.AccentText)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + bg.Spaces(gap) + right
}

// renderCharacter lays out a full record for the viewport.
func (m Model) renderCharacter(c marvel.Character, width int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	label := func(s string) string {
		return bg.Render(padRight(s, 10), styles.MutedText)
	}

	var lines []string
	lines = append(lines, bg.Render(strings.TrimSpace(c.Name), styles.AccentText.Bold(true)))
	lines = append(lines, "")

	if desc := strings.TrimSpace(c.Description); desc != "" {
		for _, line := range strings.Split(wrap(desc, width-2), "\n") {
			lines = append(lines, bg.Render(line, styles.Text))
		}
	} else {
		lines = append(lines, bg.Render("No description available.", styles.FaintText))
	}
	lines = append(lines, "")

	for _, row := range []struct {
		name string
		list marvel.ResourceList
	}{
		{"Comics", c.Comics},
		{"Series", c.Series},
		{"Stories", c.Stories},
		{"Events", c.Events},
	} {
		lines = append(lines, label(row.name)+bg.Render(formatCount(row.list.Available), styles.Text))
	}

	for _, section := range []struct {
		title string
		names []string
	}{
		{"Series", c.Series.Names()},
		{"Events", c.Events.Names()},
	} {
		if len(section.names) == 0 {
			continue
		}
		lines = append(lines, "", bg.Render(section.title, styles.AccentText.Bold(true)))
		for i, name := range section.names {
			if i == detailListLimit {
				lines = append(lines, bg.Render(fmt.Sprintf("  +%d more", len(section.names)-i), styles.FaintText))
				break
			}
			lines = append(lines, bg.Render("  "+truncate(name, width-4), styles.Text))
		}
	}

	lines = append(lines, "")
	if modified := c.ParsedModified(); !modified.IsZero() {
		lines = append(lines, label("Modified")+bg.Render(modified.Format("2006-01-02"), styles.Text))
	}
	if img := c.Thumbnail.URL("portrait_uncanny"); img != "" {
		lines = append(lines, label("Image")+bg.Render(truncate(img, width-12), styles.InfoText))
	}
	if url := c.DetailURL(); url != "" {
		lines = append(lines, label("Link")+bg.Render(truncate(url, width-12), styles.InfoText)+
			bg.Render("  y to copy", styles.FaintText))
	}

	return strings.Join(lines, "\n")
}
