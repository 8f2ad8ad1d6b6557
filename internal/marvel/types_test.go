package marvel

import (
	"encoding/json"
	"testing"
	"time"
)

func TestImageURL(t *testing.T) {
	tests := []struct {
		name    string
		img     *Image
		variant string
		want    string
	}{
		{"nil", nil, "standard_xlarge", ""},
		{"placeholder", &Image{Path: "http://i.annihil.us/u/prod/marvel/i/mg/b/40/image_not_available", Extension: "jpg"}, "", ""},
		{"upgrades scheme", &Image{Path: "http://i.annihil.us/u/prod/marvel/i/mg/3/50/526548a343e4b", Extension: "jpg"}, "standard_xlarge",
			"https://i.annihil.us/u/prod/marvel/i/mg/3/50/526548a343e4b/standard_xlarge.jpg"},
		{"no variant", &Image{Path: "https://x/y", Extension: ".png"}, "", "https://x/y.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.img.URL(tt.variant); got != tt.want {
				t.Fatalf("URL(%q) = %q, want %q", tt.variant, got, tt.want)
			}
		})
	}
}

func TestCharacterDecodeAndHelpers(t *testing.T) {
	payload := `{
		"id": 1009610,
		"name": "Spider-Man (Peter Parker)",
		"modified": "2020-07-21T10:30:10-0400",
		"thumbnail": null,
		"comics": {"available": 4300, "items": [{"name": "Amazing Fantasy (1962) #15"}]},
		"series": {"available": 3, "items": [{"name": "Amazing Spider-Man (1963 - 1998)"}, {"name": " "}]},
		"urls": [{"type": "wiki", "url": "http://wiki"}, {"type": "detail", "url": "http://detail"}]
	}`
	var c Character
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Thumbnail != nil {
		t.Fatalf("Thumbnail = %#v, want nil", c.Thumbnail)
	}
	if c.Comics.Available != 4300 {
		t.Fatalf("Comics.Available = %d, want 4300", c.Comics.Available)
	}
	if names := c.Series.Names(); len(names) != 1 || names[0] != "Amazing Spider-Man (1963 - 1998)" {
		t.Fatalf("Series.Names = %v, want one name", names)
	}
	if c.DetailURL() != "http://detail" {
		t.Fatalf("DetailURL = %q, want detail link", c.DetailURL())
	}
	mod := c.ParsedModified()
	if mod.IsZero() || mod.Year() != 2020 || mod.Month() != time.July {
		t.Fatalf("ParsedModified = %v, want 2020-07", mod)
	}
}

func TestDetailURLFallsBackToFirstLink(t *testing.T) {
	c := Character{URLs: []Link{{Type: "wiki", URL: "http://wiki"}}}
	if c.DetailURL() != "http://wiki" {
		t.Fatalf("DetailURL = %q, want wiki fallback", c.DetailURL())
	}
	if (Character{}).DetailURL() != "" {
		t.Fatalf("DetailURL on empty character should be empty")
	}
}
