// Package logtail reads the end of cerebro's session log for the diagnostics
// view.
//
// Read extracts the last N lines in one pass with a ring buffer of N slots,
// so memory stays O(N) however large the file grows. A missing file is not an
// error; the view simply shows nothing.
//
// Tail additionally parses each line as produced by slog.TextHandler:
//
//	time=2026-10-19T12:00:00.000Z level=WARN msg="catalog request rejected" request_id=9b1c... path=/v1/public/characters status=409
//
// into an Entry with the timestamp, level, message and the remaining
// attributes in order, decoded with go-logfmt. Lines that do not follow the
// key=value layout are kept verbatim as the message.
package logtail
