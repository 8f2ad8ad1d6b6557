package logtail

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cerebro.log")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}
	return path
}

func TestRead(t *testing.T) {
	var all []string
	for i := 1; i <= 10; i++ {
		all = append(all, fmt.Sprintf("Line %d", i))
	}
	logPath := writeLog(t, all...)

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero reads nothing", maxLines: 0, expected: nil},
		{name: "negative reads nothing", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: all[5:]},
		{name: "read partial with wrap (3)", maxLines: 3, expected: all[7:]},
		{name: "read exactly all (10)", maxLines: 10, expected: all},
		{name: "read more than exists (20)", maxLines: 20, expected: all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestParse_SlogTextLine(t *testing.T) {
	line := `time=2026-10-19T12:00:00.000Z level=WARN msg="catalog request rejected" request_id=abc path=/v1/public/characters status=409`
	got := Parse(line)

	want := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	if !got.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", got.Time, want)
	}
	if got.Level != "WARN" {
		t.Fatalf("Level = %q, want WARN", got.Level)
	}
	if got.Message != "catalog request rejected" {
		t.Fatalf("Message = %q, want %q", got.Message, "catalog request rejected")
	}
	wantAttrs := []Attr{
		{Key: "request_id", Value: "abc"},
		{Key: "path", Value: "/v1/public/characters"},
		{Key: "status", Value: "409"},
	}
	if !reflect.DeepEqual(got.Attrs, wantAttrs) {
		t.Fatalf("Attrs = %#v, want %#v", got.Attrs, wantAttrs)
	}
	if v, ok := got.Attr("status"); !ok || v != "409" {
		t.Fatalf("Attr(status) = %q, %v", v, ok)
	}
	if got.Raw != line {
		t.Fatalf("Raw = %q, want original line", got.Raw)
	}
}

func TestParse_QuotedValuesWithEscapes(t *testing.T) {
	got := Parse(`level=ERROR msg="say \"hi\" = ok" error="dial tcp: i/o timeout"`)
	if got.Message != `say "hi" = ok` {
		t.Fatalf("Message = %q", got.Message)
	}
	if v, _ := got.Attr("error"); v != "dial tcp: i/o timeout" {
		t.Fatalf("Attr(error) = %q", v)
	}
}

func TestParse_TextHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Warn("catalog request failed",
		"error", "status=409 conflict",
		"empty", "",
		slog.Group("g", "n", 2),
		"nl", "a\nb",
	)

	got := Parse(strings.TrimSuffix(buf.String(), "\n"))
	if got.Level != "WARN" || got.Message != "catalog request failed" {
		t.Fatalf("Level, Message = %q, %q", got.Level, got.Message)
	}
	if got.Time.IsZero() {
		t.Fatal("Time not parsed")
	}
	wantAttrs := []Attr{
		{Key: "error", Value: "status=409 conflict"},
		{Key: "empty", Value: ""},
		{Key: "g.n", Value: "2"},
		{Key: "nl", Value: "a\nb"},
	}
	if !reflect.DeepEqual(got.Attrs, wantAttrs) {
		t.Fatalf("Attrs = %#v, want %#v", got.Attrs, wantAttrs)
	}
}

func TestParse_PlainLineKeptVerbatim(t *testing.T) {
	for _, line := range []string{
		"panic: something broke",
		`msg="unterminated`,
		"=novalue",
	} {
		got := Parse(line)
		if got.Message != line || got.Level != "" || got.Attrs != nil {
			t.Fatalf("Parse(%q) = %#v, want message only", line, got)
		}
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	path := writeLog(t,
		`time=2026-10-19T12:00:00Z level=INFO msg="cerebro starting"`,
		"",
		`time=2026-10-19T12:00:01Z level=DEBUG msg="catalog request" status=200`,
	)

	entries, err := Tail(path, 10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Message != "cerebro starting" || entries[1].Level != "DEBUG" {
		t.Fatalf("entries = %#v", entries)
	}
}
