// Package config loads cerebro's settings: the catalog API base URL, the API
// key pair used to sign requests, the session log file and the client-side
// request rate.
//
// # Resolution
//
// Load reads ~/.config/cerebro/config.toml unless a path is given. A missing
// file is not an error; every field has a default except the keys. Values
// are trimmed and empty values fall back to defaults. Environment variables
// override the file:
//
//   - MARVEL_API_BASE
//   - MARVEL_PUBLIC_KEY
//   - MARVEL_PRIVATE_KEY
//   - CEREBRO_LOG_FILE
//
// # TOML Format
//
//	api_base = "https://gateway.marvel.com"
//	public_key = "..."
//	private_key = "..."
//	log_file = "~/.local/state/cerebro/cerebro.log"
//	requests_per_second = 2
//
// Tilde expansion is applied to the config path and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and malformed environment values. Without keys the client sends
// unsigned requests, which the public gateway rejects; the header surfaces
// that as an API error rather than failing at startup.
package config
