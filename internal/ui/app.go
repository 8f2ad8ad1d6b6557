package ui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/gallery"
	"github.com/five82/cerebro/internal/logtail"
	"github.com/five82/cerebro/internal/marvel"
	"github.com/five82/cerebro/internal/navigation"
	"github.com/five82/cerebro/internal/prefs"
	"github.com/five82/cerebro/internal/search"
	"github.com/five82/cerebro/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSearch View = iota
	ViewGallery
	ViewDetail
	ViewLogs
)

// tabOrder is the cycle followed by the tab key.
var tabOrder = []View{ViewSearch, ViewGallery, ViewLogs}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    marvel.Catalog
	Store     *state.Store
	LogPath   string
	ThemeName string
	Sort      catalog.SortKey
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	client    marvel.Catalog
	store     *state.Store
	logPath   string
	prefsPath string
	keys      keyMap
	copyFn    func(string) error

	// UI state
	theme       Theme
	currentView View
	returnView  View // view a detail was opened from
	width       int
	height      int
	ready       bool
	showHelp    bool
	spinner     spinner.Model

	// API health
	snapshot state.Snapshot

	// Transient status line
	flash    string
	flashSeq int

	// Search state
	search      *search.Controller
	searchInput textinput.Model
	searchRow   int

	// Gallery state
	gallery     *gallery.Engine
	galleryRow  int
	facetCursor int

	// Detail state
	nav            *navigation.Model
	detailViewport viewport.Model

	// Diagnostics state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	sort, ok := catalog.ParseSortKey(string(opts.Sort))
	if !ok {
		sort = catalog.SortNameAsc
	}

	input := textinput.New()
	input.Placeholder = "Search characters by name..."
	input.Prompt = "› "
	input.CharLimit = 64
	input.Focus()

	m := Model{
		client:      opts.Client,
		store:       opts.Store,
		logPath:     opts.LogPath,
		prefsPath:   opts.PrefsPath,
		keys:        DefaultKeyMap(),
		copyFn:      clipboard.WriteAll,
		theme:       GetTheme(themeName),
		currentView: ViewSearch,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:      search.NewController(ctx, sort),
		searchInput: input,
		gallery:     gallery.NewEngine(ctx),
		nav:         navigation.NewModel(ctx),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tickCmd(DefaultUIInterval),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
			m.logViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case debounceMsg:
		fetch, ok := m.search.Expire(msg.generation)
		if !ok {
			// A cache hit settles without fetching.
			m.searchRow = 0
			return m, nil
		}
		return m, tea.Batch(searchCmd(m.client, fetch), m.spinner.Tick)

	case searchResultMsg:
		if m.search.Resolve(msg.generation, msg.items, msg.err) {
			m.searchRow = 0
		}
		return m, nil

	case galleryLoadedMsg:
		if m.gallery.Loaded(msg.generation, msg.characters, msg.err) {
			m.galleryRow = 0
			m.facetCursor = 0
		}
		return m, nil

	case detailLoadedMsg:
		repair, needRepair, ok := m.nav.Loaded(msg.generation, msg.character, msg.err)
		if !ok {
			return m, nil
		}
		m.updateDetailViewport()
		if needRepair {
			return m, tea.Batch(repairCmd(m.client, repair), m.spinner.Tick)
		}
		return m, nil

	case repairMsg:
		m.nav.Repaired(msg.generation, msg.list, msg.err)
		return m, nil

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			return m, m.setFlash("Copy failed: " + msg.err.Error())
		}
		return m, m.setFlash("Copied " + msg.url)

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderHeader() + "\n" + m.renderCommandBar() + "\n" + m.renderContent()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	// The query field swallows printable keys while focused.
	if m.currentView == ViewSearch && m.searchInput.Focused() {
		return m.handleSearchInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, m.savePrefs()

	case key.Matches(msg, m.keys.Tab):
		return m.switchView(m.nextView())

	case key.Matches(msg, m.keys.ViewSearch):
		m, _ = m.switchView(ViewSearch)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ViewGallery):
		return m.switchView(ViewGallery)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.switchView(ViewLogs)
	}

	switch m.currentView {
	case ViewSearch:
		return m.handleSearchKey(msg)
	case ViewGallery:
		return m.handleGalleryKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// switchView leaves the current view and activates v. Leaving the gallery
// for anything but a detail supersedes its pending load, and leaving a detail
// supersedes its lookup and repair.
func (m Model) switchView(v View) (Model, tea.Cmd) {
	if v == m.currentView {
		return m, nil
	}
	prev := m.currentView
	m.currentView = v

	switch prev {
	case ViewSearch:
		m.searchInput.Blur()
	case ViewGallery:
		if v != ViewDetail {
			m.gallery.Close()
		}
	case ViewDetail:
		m.nav.Close()
	}

	switch v {
	case ViewGallery:
		if m.gallery.State() == gallery.StateIdle {
			return m, m.loadGallery()
		}
	case ViewLogs:
		return m, m.refreshLogs()
	}
	return m, nil
}

// nextView returns the view after the current one in tab order. A detail
// continues from the view it was opened from.
func (m Model) nextView() View {
	current := m.currentView
	if current == ViewDetail {
		current = m.returnView
	}
	for i, v := range tabOrder {
		if v == current {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return ViewSearch
}

// openDetail navigates to id with list as its neighbor context.
func (m Model) openDetail(id int, list catalog.NeighborList) (Model, tea.Cmd) {
	if m.currentView != ViewDetail {
		m.returnView = m.currentView
		m.searchInput.Blur()
		m.currentView = ViewDetail
	}
	lookup := m.nav.Navigate(id, list)
	m.detailViewport.SetContent("")
	m.detailViewport.GotoTop()
	return m, tea.Batch(lookupCmd(m.client, lookup), m.spinner.Tick)
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(DefaultUIInterval)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, m.refreshLogs())
	}
	return m, tea.Batch(cmds...)
}

// loading reports whether any view is waiting on the API.
func (m Model) loading() bool {
	return m.search.Loading() || m.gallery.Loading() || m.nav.Loading() || m.nav.Repairing()
}

// savePrefs persists the theme and sort order.
func (m *Model) savePrefs() tea.Cmd {
	if m.prefsPath == "" {
		return nil
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Sort: m.search.Sort()}); err != nil {
		return m.setFlash("Could not save preferences")
	}
	return nil
}

// setFlash shows text in the header until FlashDuration passes or another
// flash replaces it.
func (m *Model) setFlash(text string) tea.Cmd {
	m.flashSeq++
	m.flash = text
	seq := m.flashSeq
	return tea.Tick(FlashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

// applyTheme restyles the bubbles components for the current theme.
func (m *Model) applyTheme() {
	focusBg := lipgloss.Color(m.theme.FocusBg)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Background(focusBg)
	m.searchInput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Background(focusBg)
	m.searchInput.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Background(focusBg)
	m.searchInput.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Background(focusBg)
}

// contentHeight is the height left for the active view below the header and
// command bar.
func (m Model) contentHeight() int {
	return max(m.height-2, 3)
}

// resize fits the viewports to the terminal.
func (m *Model) resize() {
	inner := m.contentHeight() - 2
	m.detailViewport.Width = max(m.width-4, 1)
	m.detailViewport.Height = max(inner-2, 1) // neighbor bar and spacer
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(inner-2, 1) // stats line and spacer
	m.updateDetailViewport()
	m.updateLogViewport()
}

// close supersedes all outstanding work.
func (m Model) close() {
	m.search.Close()
	m.gallery.Close()
	m.nav.Close()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSearch:
		return m.renderSearch()
	case ViewGallery:
		return m.renderGallery()
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type debounceMsg struct {
	generation uint64
}

type searchResultMsg struct {
	generation uint64
	items      []catalog.CharacterSummary
	err        error
}

type galleryLoadedMsg struct {
	generation uint64
	characters []catalog.GalleryCharacter
	err        error
}

type detailLoadedMsg struct {
	generation uint64
	character  *marvel.Character
	err        error
}

type repairMsg struct {
	generation uint64
	list       catalog.NeighborList
	err        error
}

type logTailMsg struct {
	entries []logtail.Entry
	err     error
}

type clipboardMsg struct {
	url string
	err error
}

type flashClearMsg struct {
	seq int
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func debounceCmd(generation uint64) tea.Cmd {
	return tea.Tick(search.DebounceDelay, func(time.Time) tea.Msg {
		return debounceMsg{generation: generation}
	})
}

func searchCmd(client marvel.Catalog, fetch search.Fetch) tea.Cmd {
	return func() tea.Msg {
		items, err := fetch.Do(client)
		return searchResultMsg{generation: fetch.Generation, items: items, err: err}
	}
}

func galleryCmd(client marvel.Catalog, load gallery.Load) tea.Cmd {
	return func() tea.Msg {
		chars, err := load.Do(client)
		return galleryLoadedMsg{generation: load.Generation, characters: chars, err: err}
	}
}

func lookupCmd(client marvel.Catalog, lookup navigation.Lookup) tea.Cmd {
	return func() tea.Msg {
		c, err := lookup.Do(client)
		return detailLoadedMsg{generation: lookup.Generation, character: c, err: err}
	}
}

func repairCmd(client marvel.Catalog, repair navigation.Repair) tea.Cmd {
	return func() tea.Msg {
		list, err := repair.Do(client)
		return repairMsg{generation: repair.Generation, list: list, err: err}
	}
}

func copyCmd(copyFn func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{url: url, err: copyFn(url)}
	}
}

// Run starts the Bubble Tea program. Cancelling opts.Context stops it and is
// not reported as an error.
func Run(opts Options) error {
	return run(opts, tea.WithAltScreen())
}

func run(opts Options, extra ...tea.ProgramOption) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, extra...)...)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
