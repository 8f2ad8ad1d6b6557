package navigation

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/five82/cerebro/internal/catalog"
	"github.com/five82/cerebro/internal/marvel"
)

const (
	// DefaultRepairPrefix is used when the current record has no name.
	DefaultRepairPrefix = "A"

	// RepairLimit is the page size of a repair fetch.
	RepairLimit = 100

	// NotFoundMessage is shown when the record does not exist.
	NotFoundMessage = "Character not found."

	// ErrorMessage is shown when the record could not be fetched.
	ErrorMessage = "Could not load character, try again."
)

// State is the detail record's load state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateNotFound
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not found"
	case StateErrored:
		return "errored"
	default:
		return "idle"
	}
}

// Lookup is a detail fetch the caller must run and report back via Loaded.
type Lookup struct {
	Generation uint64
	Ctx        context.Context
	ID         int
}

// Do runs the lookup. A missing record is reported as marvel.ErrNotFound.
func (l Lookup) Do(client marvel.Catalog) (*marvel.Character, error) {
	c, err := client.GetCharacter(l.Ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, marvel.ErrNotFound
	}
	return c, nil
}

// Repair is a neighbor-list rebuild the caller must run and report back via
// Repaired.
type Repair struct {
	Generation uint64
	Ctx        context.Context
	Query      marvel.Query
}

// Do runs the repair fetch and returns its records as a neighbor list.
func (r Repair) Do(client marvel.Catalog) (catalog.NeighborList, error) {
	chars, err := client.SearchCharacters(r.Ctx, r.Query)
	if err != nil {
		return nil, err
	}
	return catalog.NeighborsFromSummaries(catalog.SummarizeAll(chars)), nil
}

// Model tracks the displayed detail record and the ordered neighbor list it
// was reached from. When the record is missing from that list, the list is
// rebuilt once from a name-ordered page around the record's first letter.
//
// Model is not safe for concurrent use; drive it from one event loop.
type Model struct {
	parent     context.Context
	id         int
	list       catalog.NeighborList
	detail     *marvel.Character
	state      State
	repairing  bool
	generation uint64
	cancel     context.CancelFunc
	errMsg     string
}

// NewModel returns an idle model whose fetches derive from ctx.
func NewModel(ctx context.Context) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Model{parent: ctx}
}

// Navigate shows id with list as its neighbor context, superseding any
// outstanding lookup or repair. The list is held as given.
func (m *Model) Navigate(id int, list catalog.NeighborList) Lookup {
	m.supersede()
	ctx, cancel := context.WithCancel(m.parent)
	m.cancel = cancel
	m.id = id
	m.list = list
	m.detail = nil
	m.state = StateLoading
	m.repairing = false
	m.errMsg = ""
	return Lookup{Generation: m.generation, Ctx: ctx, ID: id}
}

// Loaded reports the outcome of a lookup. It returns false when generation is
// stale. On success, when the record is not in the held list, it also returns
// the repair to run.
func (m *Model) Loaded(generation uint64, c *marvel.Character, err error) (Repair, bool, bool) {
	if generation != m.generation || m.state != StateLoading {
		return Repair{}, false, false
	}
	if err == nil && c == nil {
		err = marvel.ErrNotFound
	}
	if err != nil {
		m.release()
		if errors.Is(err, marvel.ErrNotFound) {
			m.state = StateNotFound
			m.errMsg = NotFoundMessage
		} else {
			m.state = StateErrored
			m.errMsg = ErrorMessage
		}
		return Repair{}, false, true
	}

	m.detail = c
	m.state = StateReady
	if m.list.Contains(m.id) {
		m.release()
		return Repair{}, false, true
	}

	ctx, cancel := context.WithCancel(m.parent)
	m.release()
	m.cancel = cancel
	m.repairing = true
	current := m.current()
	return Repair{
		Generation: m.generation,
		Ctx:        ctx,
		Query: marvel.Query{
			NameStartsWith: RepairPrefix(current.Name),
			Limit:          RepairLimit,
			OrderBy:        marvel.OrderName,
		},
	}, true, true
}

// Repaired reports the outcome of a repair. A failed repair leaves a list
// holding only the current record.
func (m *Model) Repaired(generation uint64, list catalog.NeighborList, err error) bool {
	if generation != m.generation || !m.repairing {
		return false
	}
	m.release()
	m.repairing = false
	current := m.current()
	if err != nil {
		m.list = catalog.NeighborList{current}
		return true
	}
	m.list = InsertByName(list, current)
	return true
}

// Close supersedes any outstanding work.
func (m *Model) Close() {
	m.supersede()
	m.repairing = false
	if m.state == StateLoading {
		m.state = StateIdle
	}
}

// Previous returns the entry before the current record.
func (m *Model) Previous() (catalog.NeighborEntry, bool) {
	return m.neighbor(-1)
}

// Next returns the entry after the current record.
func (m *Model) Next() (catalog.NeighborEntry, bool) {
	return m.neighbor(1)
}

func (m *Model) neighbor(delta int) (catalog.NeighborEntry, bool) {
	idx := m.list.IndexOf(m.id)
	if idx < 0 {
		return catalog.NeighborEntry{}, false
	}
	idx += delta
	if idx < 0 || idx >= len(m.list) {
		return catalog.NeighborEntry{}, false
	}
	return m.list[idx], true
}

func (m *Model) current() catalog.NeighborEntry {
	entry := catalog.NeighborEntry{ID: m.id}
	if m.detail != nil {
		entry.Name = strings.TrimSpace(m.detail.Name)
	}
	return entry
}

func (m *Model) supersede() {
	m.generation++
	m.release()
}

func (m *Model) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// ID returns the current record id.
func (m *Model) ID() int { return m.id }

// Detail returns the loaded record, or nil.
func (m *Model) Detail() *marvel.Character { return m.detail }

// List returns the held neighbor list.
func (m *Model) List() catalog.NeighborList { return m.list }

// State returns the load state.
func (m *Model) State() State { return m.state }

// Loading reports whether the record is being fetched.
func (m *Model) Loading() bool { return m.state == StateLoading }

// Repairing reports whether a neighbor-list repair is in flight.
func (m *Model) Repairing() bool { return m.repairing }

// Err returns the user-facing error message, if any.
func (m *Model) Err() string { return m.errMsg }

// Generation returns the current generation.
func (m *Model) Generation() uint64 { return m.generation }

// RepairPrefix returns the first character of name, or DefaultRepairPrefix
// when name is blank.
func RepairPrefix(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultRepairPrefix
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(r)
}

// InsertByName returns list with current added at its name-ascending position
// when its id is absent. The input list is not modified.
func InsertByName(list catalog.NeighborList, current catalog.NeighborEntry) catalog.NeighborList {
	if list.Contains(current.ID) {
		return list
	}
	name := strings.ToLower(current.Name)
	idx := slices.IndexFunc(list, func(e catalog.NeighborEntry) bool {
		return strings.ToLower(e.Name) > name
	})
	if idx < 0 {
		idx = len(list)
	}
	return slices.Insert(slices.Clone(list), idx, current)
}
