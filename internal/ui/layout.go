package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutFilterPaneWidth is the width of the gallery filter pane.
	LayoutFilterPaneWidth = 34
)

// Diagnostics limits.
const (
	// LogTailLines is the number of log lines shown in the diagnostics view.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// FlashDuration is how long a transient status message stays visible.
	FlashDuration = 3 * time.Second
)
