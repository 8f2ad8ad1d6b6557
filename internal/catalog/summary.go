package catalog

import (
	"strings"

	"github.com/five82/cerebro/internal/marvel"
)

// ThumbnailVariant is the image variant used for list thumbnails.
const ThumbnailVariant = "standard_xlarge"

// CharacterSummary is the read-only projection of a character used by lists.
type CharacterSummary struct {
	ID           int
	Name         string
	Codename     string
	ThumbnailURL string
	Comics       int
	Events       int
}

// Summarize projects a full record into a CharacterSummary.
func Summarize(c marvel.Character) CharacterSummary {
	name := strings.TrimSpace(c.Name)
	return CharacterSummary{
		ID:           c.ID,
		Name:         name,
		Codename:     codename(name),
		ThumbnailURL: c.Thumbnail.URL(ThumbnailVariant),
		Comics:       max(c.Comics.Available, 0),
		Events:       max(c.Events.Available, 0),
	}
}

// SummarizeAll projects records in order.
func SummarizeAll(chars []marvel.Character) []CharacterSummary {
	if len(chars) == 0 {
		return nil
	}
	out := make([]CharacterSummary, 0, len(chars))
	for _, c := range chars {
		out = append(out, Summarize(c))
	}
	return out
}

// codename extracts the alternate identity the catalog appends in parentheses,
// so "Spider-Man (Peter Parker)" yields "Peter Parker".
func codename(name string) string {
	if !strings.HasSuffix(name, ")") {
		return ""
	}
	open := strings.LastIndex(name, "(")
	if open <= 0 {
		return ""
	}
	return strings.TrimSpace(name[open+1 : len(name)-1])
}
