// Package state tracks the catalog API's health for the header.
//
// # Overview
//
// The marvel client reports every request outcome to a Store through the
// marvel.Observer interface. Requests run on bubbletea command goroutines, so
// the Store guards its Snapshot with a sync.RWMutex and hands out copies.
//
//	Producers (tea.Cmd):           Consumer (UI):
//	┌──────────────────────┐      ┌──────────────────┐
//	│ client.get()         │      │                  │
//	│   ↓                  │      │                  │
//	│ store.ObserveRequest │─────→│ store.Snapshot() │
//	└──────────────────────┘(mutex)│   ↓ render header│
//	                              └──────────────────┘
//
// # Semantics
//
//   - Requests and Failures count every completed request
//   - ConsecutiveFailures resets on the first success
//   - IsOffline reports two or more consecutive failures
//   - Attribution keeps the most recent non-empty attribution text
//   - Requests cancelled with context.Canceled are ignored, since they were
//     superseded by newer input rather than failed by the API
//   - A lookup that finds no record is observed as a success
//
// The zero Store is ready to use.
package state
