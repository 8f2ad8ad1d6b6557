package catalog

import (
	"regexp"
	"strings"

	"github.com/five82/cerebro/internal/marvel"
)

// Activity buckets a character by how many comics they appear in.
type Activity string

const (
	ActivityLegend  Activity = "legend"
	ActivityVeteran Activity = "veteran"
	ActivityRookie  Activity = "rookie"
)

// Comic-count thresholds for the activity buckets.
const (
	LegendMinComics  = 500
	VeteranMinComics = 50
)

// MaxSeriesTags caps the series tags kept per gallery character.
const MaxSeriesTags = 5

// Activities lists every bucket, most active first.
var Activities = []Activity{ActivityLegend, ActivityVeteran, ActivityRookie}

// ClassifyActivity maps a comic count to its bucket.
func ClassifyActivity(comics int) Activity {
	switch {
	case comics >= LegendMinComics:
		return ActivityLegend
	case comics >= VeteranMinComics:
		return ActivityVeteran
	default:
		return ActivityRookie
	}
}

// Label returns the display label for the bucket.
func (a Activity) Label() string {
	switch a {
	case ActivityLegend:
		return "Legend"
	case ActivityVeteran:
		return "Veteran"
	case ActivityRookie:
		return "Rookie"
	default:
		return string(a)
	}
}

// GalleryCharacter is a summary enriched with gallery facets.
type GalleryCharacter struct {
	CharacterSummary
	Activity Activity
	Series   []string
}

// ToGallery projects a full record into a GalleryCharacter.
func ToGallery(c marvel.Character) GalleryCharacter {
	summary := Summarize(c)
	return GalleryCharacter{
		CharacterSummary: summary,
		Activity:         ClassifyActivity(summary.Comics),
		Series:           SeriesTags(c.Series.Names()),
	}
}

// ToGalleryAll projects records in order.
func ToGalleryAll(chars []marvel.Character) []GalleryCharacter {
	if len(chars) == 0 {
		return nil
	}
	out := make([]GalleryCharacter, 0, len(chars))
	for _, c := range chars {
		out = append(out, ToGallery(c))
	}
	return out
}

// HasSeries reports whether the character is tagged with any of the names.
func (g GalleryCharacter) HasSeries(names map[string]struct{}) bool {
	for _, s := range g.Series {
		if _, ok := names[s]; ok {
			return true
		}
	}
	return false
}

var seriesYearsRe = regexp.MustCompile(`\s*\(\d{4}(\s*-\s*(\d{4}|Present))?\)\s*$`)

// SeriesTags turns raw series titles into at most MaxSeriesTags distinct tags.
// Publication years are dropped so "Avengers (1963 - 1996)" and
// "Avengers (1998 - 2004)" collapse into "Avengers".
func SeriesTags(titles []string) []string {
	if len(titles) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(titles))
	tags := make([]string, 0, min(len(titles), MaxSeriesTags))
	for _, title := range titles {
		tag := strings.TrimSpace(seriesYearsRe.ReplaceAllString(title, ""))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == MaxSeriesTags {
			break
		}
	}
	return tags
}
