package marvel

import (
	"strings"
	"time"
)

const (
	marvelTimestampLayout = "2006-01-02T15:04:05-0700"
	imageNotAvailable     = "image_not_available"
)

// Envelope mirrors the wrapper around every API response.
type Envelope struct {
	Code            int           `json:"code"`
	Status          string        `json:"status"`
	AttributionText string        `json:"attributionText"`
	ETag            string        `json:"etag"`
	Data            CharacterPage `json:"data"`
}

// CharacterPage is one page of character results.
type CharacterPage struct {
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	Total   int         `json:"total"`
	Count   int         `json:"count"`
	Results []Character `json:"results"`
}

// Character describes a full character record in transport form.
type Character struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Modified    string       `json:"modified"`
	Thumbnail   *Image       `json:"thumbnail"`
	ResourceURI string       `json:"resourceURI"`
	Comics      ResourceList `json:"comics"`
	Series      ResourceList `json:"series"`
	Stories     ResourceList `json:"stories"`
	Events      ResourceList `json:"events"`
	URLs        []Link       `json:"urls"`
}

// Image points at an image; the full URL is path + variant + extension.
type Image struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
}

// ResourceList is a counted, possibly truncated list of related resources.
type ResourceList struct {
	Available     int               `json:"available"`
	Returned      int               `json:"returned"`
	CollectionURI string            `json:"collectionURI"`
	Items         []ResourceSummary `json:"items"`
}

// ResourceSummary names one related resource.
type ResourceSummary struct {
	ResourceURI string `json:"resourceURI"`
	Name        string `json:"name"`
	Type        string `json:"type"`
}

// Link is a public web URL for a resource.
type Link struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// URL returns the https URL of the image at the given variant (for example
// "standard_xlarge"). It returns "" for a nil image or the API placeholder.
func (i *Image) URL(variant string) string {
	if i == nil {
		return ""
	}
	path := strings.TrimSpace(i.Path)
	if path == "" || strings.HasSuffix(path, imageNotAvailable) {
		return ""
	}
	path = strings.Replace(path, "http://", "https://", 1)
	ext := strings.TrimPrefix(strings.TrimSpace(i.Extension), ".")
	if variant = strings.TrimSpace(variant); variant != "" {
		path += "/" + variant
	}
	if ext == "" {
		return path
	}
	return path + "." + ext
}

// Names returns the item names in order, skipping blanks.
func (r ResourceList) Names() []string {
	if len(r.Items) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		if name := strings.TrimSpace(item.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// DetailURL returns the character's marvel.com detail page, falling back to
// the first link of any type.
func (c Character) DetailURL() string {
	for _, link := range c.URLs {
		if strings.EqualFold(link.Type, "detail") && link.URL != "" {
			return link.URL
		}
	}
	for _, link := range c.URLs {
		if link.URL != "" {
			return link.URL
		}
	}
	return ""
}

// ParsedModified returns the Modified timestamp as time.Time when possible.
func (c Character) ParsedModified() time.Time {
	return parseTime(c.Modified)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{marvelTimestampLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
