package catalog

import "slices"

// Facet limits.
const (
	FacetMinCount = 2
	FacetMaxCount = 8
)

// Facet is a series tag offered as a filter, with how many characters carry it.
type Facet struct {
	Name  string
	Count int
}

// Facets ranks series tags by frequency. Tags carried by fewer than
// FacetMinCount characters are dropped, ties keep first-seen order, and at most
// FacetMaxCount facets are returned.
func Facets(chars []GalleryCharacter) []Facet {
	counts := make(map[string]int)
	var order []string
	for _, c := range chars {
		for _, s := range c.Series {
			if _, ok := counts[s]; !ok {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	facets := make([]Facet, 0, len(order))
	for _, name := range order {
		if counts[name] >= FacetMinCount {
			facets = append(facets, Facet{Name: name, Count: counts[name]})
		}
	}
	slices.SortStableFunc(facets, func(a, b Facet) int {
		return b.Count - a.Count
	})
	if len(facets) > FacetMaxCount {
		facets = facets[:FacetMaxCount]
	}
	return facets
}
