package ui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/gallery"
	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/marvel/mocks"
	"github.com/five82/cerebro/internal/navigation"
	"github.com/five82/cerebro/internal/prefs"
	"github.com/five82/cerebro/internal/search"
)

func seriesList(names ...string) marvel.ResourceList {
	list := marvel.ResourceList{Available: len(names)}
	for _, n := range names {
		list.Items = append(list.Items, marvel.ResourceSummary{Name: n})
	}
	return list
}

func fixtureCatalog() *mocks.Catalog {
	return &mocks.Catalog{Characters: []marvel.Character{
		{
			ID:          1,
			Name:        "Storm",
			Description: "Ororo Munroe commands the weather.",
			Comics:      marvel.ResourceList{Available: 900},
			Series:      seriesList("X-Men (1991 - 2001)", "Avengers (1998 - 2004)"),
			URLs:        []marvel.Link{{Type: "detail", URL: "https://www.marvel.com/characters/storm"}},
		},
		{ID: 2, Name: "Stature", Comics: marvel.ResourceList{Available: 60}, Series: seriesList("Avengers (1963 - 1996)")},
		{ID: 3, Name: "Starfox", Comics: marvel.ResourceList{Available: 120}, Series: seriesList("Avengers (1963 - 1996)", "X-Men (1963 - 1981)")},
		{ID: 4, Name: "Wong", Comics: marvel.ResourceList{Available: 8}},
	}}
}

func newTestModel(t *testing.T, client marvel.Catalog) Model {
	t.Helper()
	m := New(Options{
		Client:    client,
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

// drain runs cmd and any batched commands it expands into. Only commands that
// return immediately may be drained.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds API results produced by cmd back into the model until no more
// API work is pending.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case searchResultMsg, galleryLoadedMsg, detailLoadedMsg, repairMsg, logTailMsg:
			var next tea.Cmd
			m, next = update(t, m, msg)
			queue = append(queue, drain(next)...)
		}
	}
	return m
}

func searchFor(t *testing.T, m Model, text string) Model {
	t.Helper()
	m = typeText(t, m, text)
	m, cmd := update(t, m, debounceMsg{generation: m.search.Generation()})
	return settle(t, m, cmd)
}

func resultNames(items []catalog.CharacterSummary) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestSearch_DebouncedFetchShowsSortedResults(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)

	m = typeText(t, m, "st")
	assert.Equal(t, search.StateDebouncing, m.search.State())
	assert.Zero(t, client.SearchCallCount(), "typing must not fetch before the debounce fires")

	m, cmd := update(t, m, debounceMsg{generation: m.search.Generation()})
	m = settle(t, m, cmd)

	require.Equal(t, search.StateReady, m.search.State())
	assert.Equal(t, []string{"Starfox", "Stature", "Storm"}, resultNames(m.search.Results()))
	assert.Equal(t, 1, client.SearchCallCount())
	assert.Contains(t, m.View(), "3 results")
}

func TestSearch_StaleDebounceIsIgnored(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)

	m = typeText(t, m, "s")
	stale := m.search.Generation()
	m = typeText(t, m, "t")

	m, cmd := update(t, m, debounceMsg{generation: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, search.StateDebouncing, m.search.State())
	assert.Zero(t, client.SearchCallCount())
}

func TestSearch_RepeatQueryServedFromCache(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)

	m = searchFor(t, m, "st")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, search.StateIdle, m.search.State())

	m = searchFor(t, m, "ST")
	assert.Equal(t, search.StateReady, m.search.State())
	assert.Len(t, m.search.Results(), 3)
	assert.Equal(t, 1, client.SearchCallCount())
}

func TestSearch_FailureShowsMessage(t *testing.T) {
	client := fixtureCatalog()
	client.SearchErr = errors.New("boom")
	m := newTestModel(t, client)

	m = searchFor(t, m, "st")
	assert.Equal(t, search.StateErrored, m.search.State())
	assert.Contains(t, m.View(), search.ErrorMessage)
}

func TestSearch_CycleSortReordersAndSavesPrefs(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)
	m = searchFor(t, m, "st")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.Equal(t, catalog.SortNameDesc, m.search.Sort())
	assert.Equal(t, []string{"Storm", "Stature", "Starfox"}, resultNames(m.search.Results()))
	assert.Equal(t, 1, client.SearchCallCount(), "re-sorting must not fetch")

	saved, err := prefs.Load(m.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, catalog.SortNameDesc, saved.Sort)
}

func TestDetail_OpenAndStepThroughNeighbors(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)
	m = searchFor(t, m, "st")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	require.Equal(t, ViewDetail, m.currentView)
	assert.Equal(t, 2, m.nav.ID())
	assert.Equal(t, navigation.StateReady, m.nav.State())
	assert.Len(t, m.nav.List(), 3)
	assert.Contains(t, m.View(), "Stature · 2 of 3")

	m, cmd = update(t, m, keyRunes("]"))
	m = settle(t, m, cmd)
	assert.Equal(t, 1, m.nav.ID())
	assert.Equal(t, "Storm", m.nav.Detail().Name)

	_, cmd = update(t, m, keyRunes("]"))
	assert.Nil(t, cmd, "no next neighbor at the end of the list")

	m, cmd = update(t, m, keyRunes("["))
	m = settle(t, m, cmd)
	assert.Equal(t, 2, m.nav.ID())
	assert.Equal(t, 1, client.SearchCallCount(), "neighbors already held must not trigger a repair")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewSearch, m.currentView)
}

func TestDetail_NotFound(t *testing.T) {
	m := newTestModel(t, fixtureCatalog())

	m, cmd := m.openDetail(99, nil)
	m = settle(t, m, cmd)

	assert.Equal(t, navigation.StateNotFound, m.nav.State())
	assert.Contains(t, m.View(), navigation.NotFoundMessage)
}

func TestDetail_RepairsMissingNeighbors(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)

	m, cmd := m.openDetail(3, catalog.NeighborList{{ID: 4, Name: "Wong"}})
	m = settle(t, m, cmd)

	assert.False(t, m.nav.Repairing())
	assert.Equal(t, []int{3, 2, 1}, neighborIDs(m.nav.List()))
	calls := client.SearchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "S", calls[0].NameStartsWith)
}

func neighborIDs(list catalog.NeighborList) []int {
	ids := make([]int, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestDetail_CopyLink(t *testing.T) {
	m := newTestModel(t, fixtureCatalog())
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := m.openDetail(1, catalog.NeighborList{{ID: 1, Name: "Storm"}})
	m = settle(t, m, cmd)

	_, cmd = update(t, m, keyRunes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(t, m, msg)

	assert.Equal(t, "https://www.marvel.com/characters/storm", copied)
	assert.Equal(t, "Copied https://www.marvel.com/characters/storm", m.flash)
}

func TestGallery_LoadFilterAndOpen(t *testing.T) {
	client := fixtureCatalog()
	m := newTestModel(t, client)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ViewGallery, m.currentView)
	m = settle(t, m, cmd)

	require.Equal(t, gallery.StateReady, m.gallery.State())
	assert.Len(t, m.gallery.Filtered(), 4)
	calls := client.SearchCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, gallery.FetchLimit, calls[0].Limit)

	m, _ = update(t, m, keyRunes("1"))
	assert.Equal(t, []string{"Storm"}, galleryNames(m.gallery.Filtered()))

	m, _ = update(t, m, keyRunes("c"))
	assert.Len(t, m.gallery.Filtered(), 4)

	// Facets rank Avengers (3) ahead of X-Men (2); f moves to X-Men.
	m, _ = update(t, m, keyRunes("f"))
	m, _ = update(t, m, keyRunes(" "))
	assert.Equal(t, []string{"Storm", "Starfox"}, galleryNames(m.gallery.Filtered()))

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)
	assert.Equal(t, ViewDetail, m.currentView)
	assert.Equal(t, []int{1, 3}, neighborIDs(m.nav.List()))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewGallery, m.currentView)
	assert.Equal(t, gallery.StateReady, m.gallery.State())
	assert.Len(t, client.SearchCalls(), 1, "returning from a detail must not reload the gallery")
}

func galleryNames(items []catalog.GalleryCharacter) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestGallery_FailureAndRetry(t *testing.T) {
	client := fixtureCatalog()
	client.SearchErr = errors.New("boom")
	m := newTestModel(t, client)

	m, cmd := m.switchView(ViewGallery)
	m = settle(t, m, cmd)
	assert.Equal(t, gallery.StateErrored, m.gallery.State())
	assert.Contains(t, m.View(), gallery.ErrorMessage)

	client.SearchErr = nil
	m, cmd = update(t, m, keyRunes("r"))
	m = settle(t, m, cmd)
	assert.Equal(t, gallery.StateReady, m.gallery.State())
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	m := newTestModel(t, fixtureCatalog())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, keyRunes("T"))

	assert.Equal(t, "Kanagawa", m.theme.Name)
	saved, err := prefs.Load(m.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", saved.Theme)
	assert.Equal(t, catalog.SortNameAsc, saved.Sort)
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, fixtureCatalog())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, keyRunes("?"))
	require.True(t, m.showHelp)
	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "Nightfox · Kanagawa · Slate")

	m, _ = update(t, m, keyRunes("x"))
	assert.False(t, m.showHelp)
}

func TestDiagnostics_ShowsLogTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "cerebro.log")
	lines := []string{
		`time=2026-10-19T12:00:00Z level=INFO msg="cerebro starting" config=/tmp/config.toml`,
		`time=2026-10-19T12:00:01Z level=WARN msg="catalog request failed" error="dial tcp: connection refused"`,
	}
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	m := New(Options{Client: fixtureCatalog(), LogPath: logPath})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 30})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := update(t, m, keyRunes("L"))
	require.Equal(t, ViewLogs, m.currentView)
	m = settle(t, m, cmd)

	require.Len(t, m.logEntries, 2)
	view := m.View()
	assert.Contains(t, view, "cerebro starting")
	assert.Contains(t, view, "catalog request failed")
}

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&marvel.TransientFetchError{Op: "search", Status: 401, Err: errors.New("InvalidCredentials")}, "UNAUTHORIZED"},
		{&marvel.TransientFetchError{Op: "search", Status: 409, Err: errors.New("MissingParameter")}, "BAD REQUEST"},
		{&marvel.TransientFetchError{Op: "search", Status: 429, Err: errors.New("slow down")}, "RATE LIMITED"},
		{&marvel.TransientFetchError{Op: "search", Status: 503, Err: errors.New("unavailable")}, "SERVER ERROR"},
		{&marvel.TransientFetchError{Op: "search", Err: errors.New("dial tcp: connection refused")}, "OFFLINE"},
		{errors.New("lookup gateway.marvel.com: no such host"), "HOST NOT FOUND"},
		{errors.New("weird"), "ERROR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyConnectionError(tt.err), "error %v", tt.err)
	}
	assert.Empty(t, classifyConnectionError(nil))
}

func TestRun_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		done <- run(Options{
			Context:   ctx,
			Client:    fixtureCatalog(),
			PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
		}, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the context was cancelled")
	}
}
