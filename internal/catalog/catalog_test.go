package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/cerebro/internal/marvel"
)

func series(names ...string) marvel.ResourceList {
	items := make([]marvel.ResourceSummary, 0, len(names))
	for _, n := range names {
		items = append(items, marvel.ResourceSummary{Name: n})
	}
	return marvel.ResourceList{Available: len(names), Items: items}
}

func TestSummarize(t *testing.T) {
	got := Summarize(marvel.Character{
		ID:        1009610,
		Name:      " Spider-Man (Peter Parker) ",
		Thumbnail: &marvel.Image{Path: "http://i.annihil.us/mg/3/50/spidey", Extension: "jpg"},
		Comics:    marvel.ResourceList{Available: 4300},
		Events:    marvel.ResourceList{Available: 41},
	})

	assert.Equal(t, CharacterSummary{
		ID:           1009610,
		Name:         "Spider-Man (Peter Parker)",
		Codename:     "Peter Parker",
		ThumbnailURL: "https://i.annihil.us/mg/3/50/spidey/standard_xlarge.jpg",
		Comics:       4300,
		Events:       41,
	}, got)
}

func TestSummarize_NoCodenameOrThumbnail(t *testing.T) {
	got := Summarize(marvel.Character{ID: 1, Name: "Hulk", Comics: marvel.ResourceList{Available: -3}})
	assert.Empty(t, got.Codename)
	assert.Empty(t, got.ThumbnailURL)
	assert.Zero(t, got.Comics)
	assert.Nil(t, SummarizeAll(nil))
}

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		comics int
		want   Activity
	}{
		{0, ActivityRookie},
		{VeteranMinComics - 1, ActivityRookie},
		{VeteranMinComics, ActivityVeteran},
		{LegendMinComics - 1, ActivityVeteran},
		{LegendMinComics, ActivityLegend},
		{4000, ActivityLegend},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyActivity(tt.comics), "comics=%d", tt.comics)
	}
}

func TestSeriesTags_StripsYearsDedupesAndCaps(t *testing.T) {
	got := SeriesTags([]string{
		"Avengers (1963 - 1996)",
		"Avengers (1998 - 2004)",
		"Uncanny X-Men (2016)",
		"Iron Man (2020 - Present)",
		"",
		"Thor",
		"Hulk",
		"Daredevil",
	})
	assert.Equal(t, []string{"Avengers", "Uncanny X-Men", "Iron Man", "Thor", "Hulk"}, got)
	assert.Nil(t, SeriesTags(nil))
}

func TestToGallery(t *testing.T) {
	got := ToGallery(marvel.Character{
		ID:     7,
		Name:   "Captain America",
		Comics: marvel.ResourceList{Available: 2500},
		Series: series("Avengers (1963 - 1996)", "Captain America (1968 - 1996)"),
	})
	assert.Equal(t, ActivityLegend, got.Activity)
	assert.Equal(t, []string{"Avengers", "Captain America"}, got.Series)
	assert.Equal(t, "Captain America", got.Name)
}

func TestSortKeys(t *testing.T) {
	items := []CharacterSummary{
		{ID: 1, Name: "beast", Comics: 10},
		{ID: 2, Name: "Angel", Comics: 30},
		{ID: 3, Name: "Cyclops", Comics: 10},
		{ID: 4, Name: "angel", Comics: 5},
	}

	ids := func(list []CharacterSummary) []int {
		out := make([]int, 0, len(list))
		for _, c := range list {
			out = append(out, c.ID)
		}
		return out
	}

	// Ties keep fetch order: "Angel" (2) before "angel" (4), and 1 before 3 at 10 comics.
	assert.Equal(t, []int{2, 4, 1, 3}, ids(Sorted(items, SortNameAsc)))
	assert.Equal(t, []int{3, 1, 2, 4}, ids(Sorted(items, SortNameDesc)))
	assert.Equal(t, []int{2, 1, 3, 4}, ids(Sorted(items, SortComicsDesc)))
	assert.Equal(t, []int{4, 1, 3, 2}, ids(Sorted(items, SortComicsAsc)))
	assert.Equal(t, []int{2, 1}, ids(SortedTop(items, SortComicsDesc, 2)))

	// Input is untouched.
	assert.Equal(t, []int{1, 2, 3, 4}, ids(items))
}

func TestParseSortKeyAndCycle(t *testing.T) {
	key, ok := ParseSortKey("-comics")
	require.True(t, ok)
	assert.Equal(t, SortComicsDesc, key)

	key, ok = ParseSortKey("popularity")
	assert.False(t, ok)
	assert.Equal(t, SortNameAsc, key)

	seen := []SortKey{SortNameAsc}
	for k := SortNameAsc.Next(); k != SortNameAsc; k = k.Next() {
		seen = append(seen, k)
	}
	assert.Equal(t, SortKeys, seen)
}

func TestFacets_FrequencyThresholdAndOrder(t *testing.T) {
	chars := []GalleryCharacter{
		{Series: []string{"Z", "Y", "X"}},
		{Series: []string{"Y", "X"}},
		{Series: []string{"X"}},
	}
	assert.Equal(t, []Facet{{Name: "X", Count: 3}, {Name: "Y", Count: 2}}, Facets(chars))
}

func TestFacets_TiesKeepFirstSeenAndCapAtEight(t *testing.T) {
	var chars []GalleryCharacter
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	for range 2 {
		chars = append(chars, GalleryCharacter{Series: names[:5]}, GalleryCharacter{Series: names[5:]})
	}
	got := Facets(chars)
	require.Len(t, got, FacetMaxCount)
	for i, f := range got {
		assert.Equal(t, names[i], f.Name)
		assert.Equal(t, 2, f.Count)
	}
	assert.Empty(t, Facets(nil))
}

func TestSelection_AndOfOrs(t *testing.T) {
	chars := []GalleryCharacter{
		{CharacterSummary: CharacterSummary{ID: 1}, Activity: ActivityLegend, Series: []string{"Avengers"}},
		{CharacterSummary: CharacterSummary{ID: 2}, Activity: ActivityLegend, Series: []string{"X-Men"}},
		{CharacterSummary: CharacterSummary{ID: 3}, Activity: ActivityRookie, Series: []string{"Avengers"}},
		{CharacterSummary: CharacterSummary{ID: 4}, Activity: ActivityVeteran},
	}

	var sel Selection
	assert.Len(t, sel.Apply(chars), 4)

	sel.ToggleActivity(ActivityLegend)
	sel.ToggleSeries("Avengers")
	got := sel.Apply(chars)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	// OR within a set.
	sel.ToggleActivity(ActivityRookie)
	assert.Len(t, sel.Apply(chars), 2)
	assert.Equal(t, []Activity{ActivityLegend, ActivityRookie}, sel.ActivitySelection())

	// Toggling again removes.
	sel.ToggleActivity(ActivityRookie)
	assert.False(t, sel.HasActivity(ActivityRookie))

	sel.Clear()
	assert.True(t, sel.Empty())
	assert.Len(t, sel.Apply(chars), 4)
	assert.Empty(t, sel.SeriesSelection())
}

func TestNeighborsFromSummaries_DedupesAndKeepsOrder(t *testing.T) {
	list := NeighborsFromSummaries([]CharacterSummary{
		{ID: 3, Name: "C"}, {ID: 1, Name: "A"}, {ID: 3, Name: "C again"},
	})
	assert.Equal(t, NeighborList{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}}, list)
	assert.Equal(t, 1, list.IndexOf(1))
	assert.False(t, list.Contains(99))
}
