// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/five82/cerebro/internal/marvel"
)

// Catalog is an in-memory implementation of marvel.Catalog.
//
// SearchCharacters filters Characters by case-insensitive name prefix, applies
// name ordering and the limit. GetCharacter looks up by id.
type Catalog struct {
	Characters []marvel.Character
	SearchErr  error
	GetErr     error

	mu          sync.Mutex
	searchCalls []marvel.Query
	getCalls    []int
}

// SearchCharacters returns the matching characters or SearchErr.
func (m *Catalog) SearchCharacters(ctx context.Context, query marvel.Query) ([]marvel.Character, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, query)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	prefix := strings.ToLower(strings.TrimSpace(query.NameStartsWith))
	var out []marvel.Character
	for _, c := range m.Characters {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) {
			out = append(out, c)
		}
	}
	switch query.OrderBy {
	case marvel.OrderName:
		slices.SortStableFunc(out, func(a, b marvel.Character) int { return strings.Compare(a.Name, b.Name) })
	case marvel.OrderNameDesc:
		slices.SortStableFunc(out, func(a, b marvel.Character) int { return strings.Compare(b.Name, a.Name) })
	}
	if query.Offset > 0 {
		if query.Offset >= len(out) {
			return nil, nil
		}
		out = out[query.Offset:]
	}
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

// GetCharacter returns the character with id, nil when absent, or GetErr.
func (m *Catalog) GetCharacter(ctx context.Context, id int) (*marvel.Character, error) {
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, c := range m.Characters {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

// SearchCalls returns the queries received so far.
func (m *Catalog) SearchCalls() []marvel.Query {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.searchCalls)
}

// SearchCallCount returns how many searches were issued.
func (m *Catalog) SearchCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.searchCalls)
}

// GetCallCount returns how many lookups were issued.
func (m *Catalog) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.getCalls)
}
