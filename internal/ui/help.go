package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"tab", "Cycle views"},
				{"/ b L", "Search/Gallery/Diagnostics"},
				{"esc", "Back"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Open character"},
			},
		},
		{
			title: "Search",
			items: []helpItem{
				{"i", "Edit query"},
				{"o", "Cycle sort"},
				{"ctrl+o", "Cycle sort while typing"},
			},
		},
		{
			title: "Gallery",
			items: []helpItem{
				{"1/2/3", "Legend/Veteran/Rookie"},
				{"f/F", "Next/prev series"},
				{"Space", "Toggle series"},
				{"c", "Clear filters"},
				{"r", "Reload"},
			},
		},
		{
			title: "Character",
			items: []helpItem{
				{"[ ]", "Previous/next"},
				{"y", "Copy marvel.com link"},
				{"r", "Retry"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"e/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	themes := make([]string, 0, len(ThemeNames()))
	for _, name := range ThemeNames() {
		if name == m.theme.Name {
			themes = append(themes, styles.Text.Bold(true).Render(name))
		} else {
			themes = append(themes, styles.MutedText.Render(name))
		}
	}
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Themes"))
	b.WriteString(strings.Join(themes, styles.FaintText.Render(" · ")))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
