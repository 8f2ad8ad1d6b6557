// Package app is cerebro's composition root.
//
// # Overview
//
// Open wires configuration, preferences, the session log, the API health
// store and the catalog client into a Session. Run opens a session and hands
// it to the TUI; the one-shot CLI commands use SearchOnce and LookupOnce on a
// session's client instead.
//
//	┌──────────────┐
//	│   Open()     │
//	└──────┬───────┘
//	       ├─────> config.Load()      config file + env overrides
//	       ├─────> prefs.Load()       theme, default sort
//	       ├─────> openLog()          slog text handler on the log file
//	       ├─────> state.Store{}      API health, fed by the client
//	       └─────> marvel.NewClient() signed, rate-limited HTTP client
//
// # Error Handling
//
// Fatal (returned): unreadable or invalid config, invalid API base URL.
// Degraded: missing prefs fall back to defaults; an unopenable log file
// discards logging, since the TUI owns the terminal.
package app
