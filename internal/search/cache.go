package search

import (
	"slices"
	"strings"

	"github.com/five82/cerebro/internal/catalog"
)

// NormalizeKey turns raw input into a cache key: trimmed and lower-cased.
func NormalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Cache memoizes search results per normalized query for the lifetime of one
// controller. Entries are stored in fetch order and never expire.
type Cache struct {
	entries map[string][]catalog.CharacterSummary
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]catalog.CharacterSummary)}
}

// Get returns the entry for key.
func (c *Cache) Get(key string) ([]catalog.CharacterSummary, bool) {
	items, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(items), true
}

// Put stores items under key, replacing any previous entry.
func (c *Cache) Put(key string, items []catalog.CharacterSummary) {
	if key == "" {
		return
	}
	c.entries[key] = slices.Clone(items)
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	return len(c.entries)
}
