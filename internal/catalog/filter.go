package catalog

import (
	"slices"
	"sort"
)

// Selection is a gallery filter: a set of activity buckets and a set of series
// tags. An empty set matches everything; the two sets are combined with AND.
type Selection struct {
	activity map[Activity]struct{}
	series   map[string]struct{}
}

// ToggleActivity adds a when absent and removes it when present.
func (s *Selection) ToggleActivity(a Activity) {
	if s.activity == nil {
		s.activity = make(map[Activity]struct{})
	}
	toggle(s.activity, a)
}

// ToggleSeries adds name when absent and removes it when present.
func (s *Selection) ToggleSeries(name string) {
	if s.series == nil {
		s.series = make(map[string]struct{})
	}
	toggle(s.series, name)
}

// Clear empties both sets.
func (s *Selection) Clear() {
	s.activity = nil
	s.series = nil
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.activity) == 0 && len(s.series) == 0
}

// HasActivity reports whether a is selected.
func (s Selection) HasActivity(a Activity) bool {
	_, ok := s.activity[a]
	return ok
}

// HasSeries reports whether name is selected.
func (s Selection) HasSeries(name string) bool {
	_, ok := s.series[name]
	return ok
}

// ActivitySelection returns the selected buckets, most active first.
func (s Selection) ActivitySelection() []Activity {
	var out []Activity
	for _, a := range Activities {
		if s.HasActivity(a) {
			out = append(out, a)
		}
	}
	return out
}

// SeriesSelection returns the selected series tags sorted by name.
func (s Selection) SeriesSelection() []string {
	out := make([]string, 0, len(s.series))
	for name := range s.series {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Matches applies the AND-of-ORs predicate to one character.
func (s Selection) Matches(c GalleryCharacter) bool {
	if len(s.activity) > 0 && !s.HasActivity(c.Activity) {
		return false
	}
	if len(s.series) > 0 && !c.HasSeries(s.series) {
		return false
	}
	return true
}

// Apply returns the characters that match, in their original order.
func (s Selection) Apply(chars []GalleryCharacter) []GalleryCharacter {
	if s.Empty() {
		return slices.Clone(chars)
	}
	out := make([]GalleryCharacter, 0, len(chars))
	for _, c := range chars {
		if s.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

func toggle[K comparable](set map[K]struct{}, k K) {
	if _, ok := set[k]; ok {
		delete(set, k)
		return
	}
	set[k] = struct{}{}
}
