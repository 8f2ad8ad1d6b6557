package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/search"
)

// renderHeader renders the status bar with API health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth
	snap := m.snapshot

	parts := []string{bg.Render("cerebro", styles.Logo)}

	switch {
	case snap.IsOffline():
		parts = append(parts, bg.Render("● API "+classifyConnectionError(snap.LastError), styles.DangerText))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("● API "+classifyConnectionError(snap.LastError), styles.WarningText))
	case snap.HasContact():
		parts = append(parts, bg.Render("● API OK", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("● API idle", styles.MutedText))
	}

	parts = append(parts,
		bg.Render("Req:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Requests), styles.Text))
	if snap.Failures > 0 {
		parts = append(parts,
			bg.Render("Fail:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", snap.Failures), styles.DangerText))
	}
	if !snap.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(snap.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if m.flash != "" {
		parts = append(parts, bg.Render(truncate(m.flash, 60), styles.WarningText.Bold(true)))
	} else if !compact && snap.Attribution != "" {
		parts = append(parts, bg.Render(truncate(snap.Attribution, 50), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		MaxHeight(1).
		Render(bg.Join(parts, "  "))
}

// classifyConnectionError returns a short description of an API failure.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var fetchErr *marvel.TransientFetchError
	if errors.As(err, &fetchErr) && fetchErr.Status > 0 {
		switch {
		case fetchErr.Status == http.StatusUnauthorized:
			return "UNAUTHORIZED"
		case fetchErr.Status == http.StatusConflict:
			return "BAD REQUEST"
		case fetchErr.Status == http.StatusTooManyRequests:
			return "RATE LIMITED"
		case fetchErr.Status >= http.StatusInternalServerError:
			return "SERVER ERROR"
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewGallery:
		commands = []cmd{
			{"1/2/3", "Activity"},
			{"f/F", "Series"},
			{"Space", "Toggle"},
			{"c", "Clear"},
			{"r", "Reload"},
			{"enter", "Open"},
			{"/", "Search"},
			{"L", "Diagnostics"},
			{"?", "More"},
		}
	case ViewDetail:
		commands = []cmd{
			{"[", "Prev"},
			{"]", "Next"},
			{"y", "Copy link"},
			{"j/k", "Scroll"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"r", "Refresh"},
			{"/", "Search"},
			{"b", "Gallery"},
			{"?", "More"},
		}
	default: // ViewSearch
		if m.searchInput.Focused() {
			commands = []cmd{
				{"up/down", "Select"},
				{"enter", "Open"},
				{"ctrl+o", m.search.Sort().Label()},
				{"tab", "Gallery"},
				{"esc", "Leave input"},
			}
		} else {
			commands = []cmd{
				{"i", "Edit"},
				{"o", m.search.Sort().Label()},
				{"j/k", "Select"},
				{"enter", "Open"},
				{"b", "Gallery"},
				{"L", "Diagnostics"},
				{"?", "More"},
			}
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.currentView == ViewSearch && m.search.CacheLen() > 0 {
		segments = append(segments,
			bg.Render(fmt.Sprintf("%d cached/%d shown", m.search.CacheLen(), search.DisplayLimit), styles.FaintText))
	}

	// Theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(strings.Join(segments, sep))
}
