// Package ui provides the Bubble Tea terminal interface for cerebro.
//
// # Architecture Overview
//
// The Model owns one search.Controller, one gallery.Engine and one
// navigation.Model. Those state machines never block: each transition that
// needs the API returns a work descriptor (search.Fetch, gallery.Load,
// navigation.Lookup, navigation.Repair). The Model runs the descriptor's Do
// method inside a tea.Cmd and reports the result back as a message carrying
// the generation it was issued under. Results for a superseded generation
// are dropped by the state machine.
//
// # Views
//
//   - Search: debounced prefix search with a sort order remembered in prefs
//   - Gallery: one bulk load filtered by activity bucket and series facets
//   - Detail: a single character with previous/next stepping
//   - Diagnostics: the tail of the session log plus API request counts
//
// The header shows API health from state.Store and the command bar shows the
// keys of the current view.
//
// # Key Bindings
//
//   - /: Search (focuses the query field)
//   - b: Gallery
//   - L: Diagnostics
//   - Tab: Cycle views
//   - ESC: Leave the query field, or return from a detail
//   - [ and ]: Previous and next character in a detail
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
package ui
