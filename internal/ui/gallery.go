package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/gallery"
)

// handleGalleryKey processes keyboard input for the gallery view.
func (m Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chars := m.gallery.Filtered()
	facets := m.gallery.Facets()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.galleryRow = max(m.galleryRow-1, 0)
	case key.Matches(msg, m.keys.Down):
		if m.galleryRow < len(chars)-1 {
			m.galleryRow++
		}
	case key.Matches(msg, m.keys.Top):
		m.galleryRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.galleryRow = max(len(chars)-1, 0)
	case key.Matches(msg, m.keys.Confirm):
		if len(chars) == 0 {
			return m, nil
		}
		row := min(m.galleryRow, len(chars)-1)
		return m.openDetail(chars[row].ID, catalog.NeighborsFromGallery(chars))
	case key.Matches(msg, m.keys.ToggleActivity):
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(catalog.Activities) {
			m.gallery.ToggleActivity(catalog.Activities[idx])
			m.galleryRow = 0
		}
	case key.Matches(msg, m.keys.NextFacet):
		if len(facets) > 0 {
			m.facetCursor = (m.facetCursor + 1) % len(facets)
		}
	case key.Matches(msg, m.keys.PrevFacet):
		if len(facets) > 0 {
			m.facetCursor = (m.facetCursor - 1 + len(facets)) % len(facets)
		}
	case key.Matches(msg, m.keys.ToggleFacet):
		if m.facetCursor < len(facets) {
			m.gallery.ToggleSeries(facets[m.facetCursor].Name)
			m.galleryRow = 0
		}
	case key.Matches(msg, m.keys.ClearFilters):
		m.gallery.ClearFilters()
		m.galleryRow = 0
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadGallery()
	}
	return m, nil
}

// loadGallery starts a bulk load, superseding any load in flight.
func (m *Model) loadGallery() tea.Cmd {
	load := m.gallery.Begin()
	m.galleryRow = 0
	m.facetCursor = 0
	return tea.Batch(galleryCmd(m.client, load), m.spinner.Tick)
}

// renderGallery renders the filter pane beside the character list.
func (m Model) renderGallery() string {
	height := m.contentHeight()
	filterWidth := min(LayoutFilterPaneWidth, m.width/2)
	listWidth := max(m.width-filterWidth, 10)

	filters := m.renderTitledBox("Filters", m.renderGalleryFilters(filterWidth-2), filterWidth, height, false)

	title := "Gallery"
	if m.gallery.State() == gallery.StateReady {
		title = fmt.Sprintf("Gallery · %d of %d", len(m.gallery.Filtered()), len(m.gallery.Characters()))
	}
	list := m.renderTitledBox(title, m.renderGalleryList(listWidth-2, height-2), listWidth, height, true)

	return lipgloss.JoinHorizontal(lipgloss.Top, filters, list)
}

// renderGalleryFilters lists the activity buckets then the series facets.
func (m Model) renderGalleryFilters(width int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	check := func(on bool) string {
		if on {
			return bg.Render("[x]", styles.SuccessText)
		}
		return bg.Render("[ ]", styles.FaintText)
	}

	lines := []string{bg.Render("Activity", styles.AccentText.Bold(true))}
	for i, a := range catalog.Activities {
		badge := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ActivityColor(a)))
		lines = append(lines,
			bg.Render(fmt.Sprintf("%d", i+1), styles.WarningText)+bg.Space()+
				check(m.gallery.HasActivity(a))+bg.Space()+
				bg.Render(a.Label(), badge))
	}

	lines = append(lines, "", bg.Render("Series", styles.AccentText.Bold(true)))
	facets := m.gallery.Facets()
	if len(facets) == 0 {
		lines = append(lines, bg.Render("none shared yet", styles.FaintText))
	}
	for i, f := range facets {
		count := fmt.Sprintf("%d", f.Count)
		nameWidth := max(width-lipgloss.Width(count)-8, 4)
		row := check(m.gallery.HasSeries(f.Name)) + bg.Space() +
			bg.Render(padRight(truncate(f.Name, nameWidth), nameWidth), styles.Text) + bg.Space() +
			bg.Render(count, styles.MutedText)
		cursor := bg.Spaces(2)
		if i == m.facetCursor {
			cursor = bg.Render("›", styles.AccentText) + bg.Space()
		}
		lines = append(lines, cursor+row)
	}

	if m.gallery.Filtering() {
		lines = append(lines, "", bg.Render("c clears filters", styles.FaintText))
	}
	return strings.Join(lines, "\n")
}

// renderGalleryList renders the filtered characters, scrolled so the
// selected row stays visible.
func (m Model) renderGalleryList(width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	switch m.gallery.State() {
	case gallery.StateLoading:
		return m.spinner.View() + bg.Space() + bg.Render("Loading the gallery...", styles.MutedText)
	case gallery.StateErrored:
		return bg.Render(m.gallery.Err(), styles.DangerText)
	case gallery.StateIdle:
		return ""
	}

	chars := m.gallery.Filtered()
	if len(chars) == 0 {
		if m.gallery.Filtering() {
			return bg.Render("No characters match the selected filters.", styles.WarningText)
		}
		return bg.Render("The catalog returned no characters.", styles.WarningText)
	}

	start := 0
	if height > 0 && m.galleryRow >= height {
		start = m.galleryRow - height + 1
	}
	end := min(start+max(height, 1), len(chars))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatGalleryRow(chars[i], width, i == m.galleryRow))
	}
	return strings.Join(lines, "\n")
}

// formatGalleryRow renders one character with its activity badge and series
// tags.
func (m Model) formatGalleryRow(c catalog.GalleryCharacter, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var nameStyle, badgeStyle, tagStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, badgeStyle, tagStyle = selText.Bold(true), selText, selText
	} else {
		styles := m.theme.Styles()
		nameStyle = styles.Text
		badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ActivityColor(c.Activity)))
		tagStyle = styles.FaintText
	}

	nameWidth := min(max(width/3, 12), 32)
	badge := padRight(c.Activity.Label(), 8)
	tagWidth := max(width-nameWidth-len(badge)-5, 0)

	return bg.FillLine(
		bg.Space()+
			bg.Render(padRight(truncate(c.Name, nameWidth), nameWidth), nameStyle)+bg.Spaces(2)+
			bg.Render(badge, badgeStyle)+bg.Space()+
			bg.Render(truncate(strings.Join(c.Series, ", "), tagWidth), tagStyle),
		width)
}
