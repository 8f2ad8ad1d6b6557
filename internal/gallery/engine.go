package gallery

import (
	"context"
	"slices"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/marvel"
)

const (
	// FetchLimit is the size of the single bulk page the gallery shows.
	FetchLimit = 100

	// ErrorMessage is shown when the bulk load fails.
	ErrorMessage = "Could not load the gallery, press r to retry."
)

// State is the engine's load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Load is a bulk fetch the caller must run and report back via Loaded.
type Load struct {
	Generation uint64
	Ctx        context.Context
	Query      marvel.Query
}

// Do runs the load against client and maps the records for the gallery.
func (l Load) Do(client marvel.Catalog) ([]catalog.GalleryCharacter, error) {
	chars, err := client.SearchCharacters(l.Ctx, l.Query)
	if err != nil {
		return nil, err
	}
	return catalog.ToGalleryAll(chars), nil
}

// Engine holds one gallery session: the fetched characters, their facets and
// the active filter selection. Filtering never touches the network.
//
// Engine is not safe for concurrent use; drive it from one event loop.
type Engine struct {
	parent     context.Context
	state      State
	generation uint64
	cancel     context.CancelFunc
	characters []catalog.GalleryCharacter
	facets     []catalog.Facet
	selection  catalog.Selection
	filtered   []catalog.GalleryCharacter
	errMsg     string
}

// NewEngine returns an idle engine whose loads derive from ctx.
func NewEngine(ctx context.Context) *Engine {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Engine{parent: ctx}
}

// Begin starts a new load, superseding any pending one and discarding the
// previous session's characters and selection.
func (e *Engine) Begin() Load {
	e.supersede()
	ctx, cancel := context.WithCancel(e.parent)
	e.cancel = cancel
	e.state = StateLoading
	e.characters = nil
	e.facets = nil
	e.filtered = nil
	e.selection.Clear()
	e.errMsg = ""
	return Load{
		Generation: e.generation,
		Ctx:        ctx,
		Query: marvel.Query{
			Limit:   FetchLimit,
			OrderBy: marvel.OrderModifiedDesc,
		},
	}
}

// Loaded reports the outcome of a load. It returns false, changing nothing,
// when generation is no longer current.
func (e *Engine) Loaded(generation uint64, chars []catalog.GalleryCharacter, err error) bool {
	if generation != e.generation || e.state != StateLoading {
		return false
	}
	e.release()
	if err != nil {
		e.state = StateErrored
		e.errMsg = ErrorMessage
		return true
	}
	e.characters = chars
	e.facets = catalog.Facets(chars)
	e.state = StateReady
	e.refilter()
	return true
}

// ToggleActivity flips a in the activity selection.
func (e *Engine) ToggleActivity(a catalog.Activity) {
	e.selection.ToggleActivity(a)
	e.refilter()
}

// ToggleSeries flips name in the series selection.
func (e *Engine) ToggleSeries(name string) {
	e.selection.ToggleSeries(name)
	e.refilter()
}

// ClearFilters empties both selections so every character matches.
func (e *Engine) ClearFilters() {
	e.selection.Clear()
	e.refilter()
}

// Close supersedes a pending load. Its eventual result is ignored.
func (e *Engine) Close() {
	e.supersede()
	if e.state == StateLoading {
		e.state = StateIdle
	}
}

func (e *Engine) refilter() {
	e.filtered = e.selection.Apply(e.characters)
}

func (e *Engine) supersede() {
	e.generation++
	e.release()
}

func (e *Engine) release() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// State returns the load state.
func (e *Engine) State() State { return e.state }

// Loading reports whether a load is in flight.
func (e *Engine) Loading() bool { return e.state == StateLoading }

// Err returns the user-facing error message, if any.
func (e *Engine) Err() string { return e.errMsg }

// Generation returns the current generation.
func (e *Engine) Generation() uint64 { return e.generation }

// Facets returns the facet list computed for the current load.
func (e *Engine) Facets() []catalog.Facet { return slices.Clone(e.facets) }

// Characters returns every fetched character.
func (e *Engine) Characters() []catalog.GalleryCharacter { return slices.Clone(e.characters) }

// Filtered returns the characters matching the selection, in fetch order.
func (e *Engine) Filtered() []catalog.GalleryCharacter { return slices.Clone(e.filtered) }

// HasActivity reports whether a is selected.
func (e *Engine) HasActivity(a catalog.Activity) bool { return e.selection.HasActivity(a) }

// HasSeries reports whether name is selected.
func (e *Engine) HasSeries(name string) bool { return e.selection.HasSeries(name) }

// Filtering reports whether any filter is active.
func (e *Engine) Filtering() bool { return !e.selection.Empty() }

// ActivitySelection returns the selected activity buckets.
func (e *Engine) ActivitySelection() []catalog.Activity { return e.selection.ActivitySelection() }

// SeriesSelection returns the selected series tags.
func (e *Engine) SeriesSelection() []string { return e.selection.SeriesSelection() }
