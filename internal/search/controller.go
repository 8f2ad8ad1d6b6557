package search

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/marvel"
)

const (
	// DebounceDelay is how long input must stay unchanged before searching.
	DebounceDelay = 300 * time.Millisecond

	// DisplayLimit caps both the fetch size and the displayed results.
	DisplayLimit = 10

	// ErrorMessage is shown for any failed search.
	ErrorMessage = "Something went wrong, try again."
)

// State is the controller's position in the search lifecycle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateLoading
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
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

// Fetch describes a search the caller must run and report back via Resolve.
type Fetch struct {
	Generation uint64
	Key        string
	Ctx        context.Context
	Query      marvel.Query
}

// Do runs the fetch against client and projects the records.
func (f Fetch) Do(client marvel.Catalog) ([]catalog.CharacterSummary, error) {
	chars, err := client.SearchCharacters(f.Ctx, f.Query)
	if err != nil {
		return nil, err
	}
	return catalog.SummarizeAll(chars), nil
}

// Controller owns the search input state machine. It never starts timers or
// goroutines itself: the caller schedules Expire after DebounceDelay and runs
// the returned Fetch, and every callback carries the generation it was issued
// for. Callbacks from a superseded generation are ignored.
//
// Controller is not safe for concurrent use; drive it from one event loop.
type Controller struct {
	parent     context.Context
	cache      *Cache
	state      State
	text       string
	key        string
	sort       catalog.SortKey
	generation uint64
	cancel     context.CancelFunc
	batch      []catalog.CharacterSummary
	results    []catalog.CharacterSummary
	errMsg     string
}

// NewController returns an idle controller sorting by sort. Fetch contexts
// derive from ctx.
func NewController(ctx context.Context, sort catalog.SortKey) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := catalog.ParseSortKey(string(sort)); !ok {
		sort = catalog.SortNameAsc
	}
	return &Controller{
		parent: ctx,
		cache:  NewCache(),
		sort:   sort,
	}
}

// Input records a change of the query text and supersedes any pending timer
// or in-flight fetch. When debounce is true the caller must call
// Expire(generation) once DebounceDelay has elapsed.
func (c *Controller) Input(text string) (generation uint64, debounce bool) {
	c.supersede()
	c.text = text
	c.key = NormalizeKey(text)
	if c.key == "" {
		c.state = StateIdle
		c.batch = nil
		c.results = nil
		c.errMsg = ""
		return c.generation, false
	}
	c.state = StateDebouncing
	return c.generation, true
}

// Expire handles the end of a debounce window. A cache hit moves straight to
// ready; a miss moves to loading and returns the fetch to run.
func (c *Controller) Expire(generation uint64) (Fetch, bool) {
	if generation != c.generation || c.state != StateDebouncing {
		return Fetch{}, false
	}
	if cached, ok := c.cache.Get(c.key); ok {
		c.ready(cached)
		return Fetch{}, false
	}

	ctx, cancel := context.WithCancel(c.parent)
	c.cancel = cancel
	c.state = StateLoading
	return Fetch{
		Generation: generation,
		Key:        c.key,
		Ctx:        ctx,
		Query: marvel.Query{
			NameStartsWith: strings.TrimSpace(c.text),
			Limit:          DisplayLimit,
		},
	}, true
}

// Resolve reports the outcome of a fetch. It returns false, changing nothing,
// when generation is no longer current.
func (c *Controller) Resolve(generation uint64, items []catalog.CharacterSummary, err error) bool {
	if generation != c.generation || c.state != StateLoading {
		return false
	}
	c.release()
	if err != nil {
		c.state = StateErrored
		c.batch = nil
		c.results = nil
		c.errMsg = ErrorMessage
		return true
	}
	c.cache.Put(c.key, items)
	c.ready(items)
	return true
}

// SetSort changes the comparator. Ready results are re-sorted from the held
// batch; nothing is fetched or looked up.
func (c *Controller) SetSort(key catalog.SortKey) {
	c.sort = key
	if c.state == StateReady {
		c.results = catalog.SortedTop(c.batch, c.sort, DisplayLimit)
	}
}

// Close supersedes any outstanding work.
func (c *Controller) Close() {
	c.supersede()
	if c.state == StateDebouncing || c.state == StateLoading {
		c.state = StateIdle
	}
}

func (c *Controller) ready(items []catalog.CharacterSummary) {
	c.batch = items
	c.results = catalog.SortedTop(items, c.sort, DisplayLimit)
	c.errMsg = ""
	c.state = StateReady
}

func (c *Controller) supersede() {
	c.generation++
	c.release()
}

func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Text returns the raw query text.
func (c *Controller) Text() string { return c.text }

// Sort returns the active comparator.
func (c *Controller) Sort() catalog.SortKey { return c.sort }

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool { return c.state == StateLoading }

// Err returns the user-facing error message, if any.
func (c *Controller) Err() string { return c.errMsg }

// Generation returns the current generation.
func (c *Controller) Generation() uint64 { return c.generation }

// Results returns the displayed summaries.
func (c *Controller) Results() []catalog.CharacterSummary { return slices.Clone(c.results) }

// CacheLen returns how many queries are memoized.
func (c *Controller) CacheLen() int { return c.cache.Len() }
