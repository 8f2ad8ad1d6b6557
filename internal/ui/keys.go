package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	Escape     key.Binding

	// View switching
	ViewSearch  key.Binding
	ViewGallery key.Binding
	ViewLogs    key.Binding

	// Navigation
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Confirm key.Binding

	// Search actions
	FocusInput     key.Binding
	CycleSort      key.Binding
	CycleSortInput key.Binding

	// Gallery actions
	ToggleActivity key.Binding
	NextFacet      key.Binding
	PrevFacet      key.Binding
	ToggleFacet    key.Binding
	ClearFilters   key.Binding
	Reload         key.Binding

	// Detail actions
	Previous key.Binding
	Next     key.Binding
	CopyLink key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// View switching
		ViewSearch: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ViewGallery: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Browse gallery"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open character"),
		),

		// Search actions
		FocusInput: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Edit query"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Cycle sort"),
		),
		CycleSortInput: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Cycle sort while typing"),
		),

		// Gallery actions
		ToggleActivity: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1/2/3", "Toggle Legend/Veteran/Rookie"),
		),
		NextFacet: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Next series filter"),
		),
		PrevFacet: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Previous series filter"),
		),
		ToggleFacet: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle series filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		// Detail actions
		Previous: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous character"),
		),
		Next: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next character"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy marvel.com link"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewSearch, k.ViewGallery, k.ViewLogs, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom, k.Confirm},
		{k.FocusInput, k.CycleSort, k.CycleSortInput},
		{k.ToggleActivity, k.NextFacet, k.PrevFacet, k.ToggleFacet, k.ClearFilters, k.Reload},
		{k.Previous, k.Next, k.CopyLink},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
