package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey selects one of the four list comparators.
type SortKey string

const (
	SortNameAsc    SortKey = "name"
	SortNameDesc   SortKey = "-name"
	SortComicsDesc SortKey = "-comics"
	SortComicsAsc  SortKey = "comics"
)

// SortKeys lists the comparators in cycling order.
var SortKeys = []SortKey{SortNameAsc, SortNameDesc, SortComicsDesc, SortComicsAsc}

// ParseSortKey returns the key named by s, or SortNameAsc and false when s is
// not a known key.
func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(strings.TrimSpace(s))
	if slices.Contains(SortKeys, key) {
		return key, true
	}
	return SortNameAsc, false
}

// Next returns the following key in cycling order.
func (k SortKey) Next() SortKey {
	idx := slices.Index(SortKeys, k)
	return SortKeys[(idx+1)%len(SortKeys)]
}

// Label returns the display label for the key.
func (k SortKey) Label() string {
	switch k {
	case SortNameDesc:
		return "Name Z-A"
	case SortComicsDesc:
		return "Most comics"
	case SortComicsAsc:
		return "Fewest comics"
	default:
		return "Name A-Z"
	}
}

// Compare orders two summaries by the key alone. Equal keys compare as 0 so a
// stable sort keeps their fetch order.
func (k SortKey) Compare(a, b CharacterSummary) int {
	switch k {
	case SortNameDesc:
		return compareNames(b.Name, a.Name)
	case SortComicsDesc:
		return cmp.Compare(b.Comics, a.Comics)
	case SortComicsAsc:
		return cmp.Compare(a.Comics, b.Comics)
	default:
		return compareNames(a.Name, b.Name)
	}
}

func compareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Sorted returns a sorted copy of items; items is never modified.
func Sorted(items []CharacterSummary, key SortKey) []CharacterSummary {
	if len(items) == 0 {
		return nil
	}
	out := slices.Clone(items)
	slices.SortStableFunc(out, key.Compare)
	return out
}

// SortedTop sorts a copy of items and keeps at most limit entries.
func SortedTop(items []CharacterSummary, key SortKey, limit int) []CharacterSummary {
	out := Sorted(items, key)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
