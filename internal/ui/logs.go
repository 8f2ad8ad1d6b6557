package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/logtail"
)

// handleLogsKey processes keyboard input for the diagnostics view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Reload):
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// refreshLogs reads the tail of the log file off the update loop.
func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.Tail(path, LogTailLines)
		return logTailMsg{entries: entries, err: err}
	}
}

// handleLogTail stores a fresh tail, following the end when the viewport was
// already there.
func (m *Model) handleLogTail(msg logTailMsg) {
	follow := m.logViewport.AtBottom() || len(m.logEntries) == 0
	m.logErr = msg.err
	if msg.err == nil {
		m.logEntries = msg.entries
	}
	m.updateLogViewport()
	if follow {
		m.logViewport.GotoBottom()
	}
}

// updateLogViewport renders the entries into the viewport.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		return
	}
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.SetContent(m.renderLogContent(m.logViewport.Width))
}

// renderLogContent formats each entry as time, level, message and attributes.
func (m Model) renderLogContent(width int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	if len(m.logEntries) == 0 {
		return bg.Render("No log entries yet.", styles.FaintText)
	}

	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		if e.Level == "" {
			lines = append(lines, bg.Render(truncate(e.Message, width), styles.MutedText))
			continue
		}

		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(bg.Render(e.Time.Local().Format("15:04:05"), styles.FaintText))
			b.WriteString(bg.Space())
		}
		b.WriteString(bg.Render(padRight(e.Level, 5), m.levelStyle(e.Level, styles)))
		b.WriteString(bg.Space())
		b.WriteString(bg.Render(e.Message, styles.Text))
		for _, a := range e.Attrs {
			b.WriteString(bg.Space())
			b.WriteString(bg.Render(a.Key+"=", styles.FaintText))
			b.WriteString(bg.Render(a.Value, styles.MutedText))
		}
		lines = append(lines, lipgloss.NewStyle().MaxWidth(width).Render(b.String()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "ERROR":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.InfoText
	}
}

// renderLogs renders the diagnostics view.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	var body string
	switch {
	case m.logPath == "":
		body = bg.Render("Logging is disabled.", styles.FaintText)
	case m.logErr != nil:
		body = bg.Render("Could not read log: "+m.logErr.Error(), styles.DangerText)
	default:
		body = m.logViewport.View()
	}

	lines := strings.Split(body, "\n")
	for len(lines) < m.logViewport.Height {
		lines = append(lines, "")
	}
	lines = append(lines, "", m.renderRequestStats())
	for i, line := range lines {
		lines[i] = bg.Space() + line
	}

	title := "Diagnostics"
	if m.logPath != "" {
		title += " · " + truncateMiddle(m.logPath, max(m.width/2, 20))
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

// renderRequestStats summarises API traffic observed this session.
func (m Model) renderRequestStats() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	snap := m.snapshot

	failStyle := styles.MutedText
	if snap.Failures > 0 {
		failStyle = styles.DangerText
	}
	parts := []string{
		bg.Render("Requests:", styles.MutedText) + bg.Space() + bg.Render(fmt.Sprintf("%d", snap.Requests), styles.Text),
		bg.Render("Failures:", styles.MutedText) + bg.Space() + bg.Render(fmt.Sprintf("%d", snap.Failures), failStyle),
	}
	if snap.LastError != nil {
		parts = append(parts, bg.Render("Last error:", styles.MutedText)+bg.Space()+
			bg.Render(truncate(snap.LastError.Error(), max(m.width/2, 20)), styles.DangerText))
	}
	return bg.Join(parts, "  ")
}
