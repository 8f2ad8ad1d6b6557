package catalog

// NeighborEntry is one stop in a neighbor list.
type NeighborEntry struct {
	ID   int
	Name string
}

// NeighborList is the ordered context a detail view steps through.
type NeighborList []NeighborEntry

// NeighborsFromSummaries builds a neighbor list in display order, keeping the
// first occurrence of each id.
func NeighborsFromSummaries(items []CharacterSummary) NeighborList {
	list := make(NeighborList, 0, len(items))
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		list = append(list, NeighborEntry{ID: item.ID, Name: item.Name})
	}
	return list
}

// NeighborsFromGallery builds a neighbor list from gallery characters.
func NeighborsFromGallery(items []GalleryCharacter) NeighborList {
	summaries := make([]CharacterSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, item.CharacterSummary)
	}
	return NeighborsFromSummaries(summaries)
}

// IndexOf returns the position of id, or -1.
func (l NeighborList) IndexOf(id int) int {
	for i, e := range l {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is in the list.
func (l NeighborList) Contains(id int) bool {
	return l.IndexOf(id) >= 0
}
