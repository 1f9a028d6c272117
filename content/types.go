package content

import (
	"encoding/json"
	"time"
)

// Post categories form a closed set. "daily-horoscope" predates the current
// taxonomy but still appears on old documents, so it stays accepted.
const (
	CategoryVedicKnowledge = "vedic-knowledge"
	CategoryRemedies       = "remedies"
	CategoryFestivals      = "festivals"
	CategoryDailyHoroscope = "daily-horoscope"
)

// Categories lists the valid post categories in display order.
var Categories = []string{
	CategoryDailyHoroscope,
	CategoryVedicKnowledge,
	CategoryRemedies,
	CategoryFestivals,
}

// ValidCategory reports whether c belongs to the closed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Slug mirrors the content store's slug wrapper object.
type Slug struct {
	Current string `json:"current"`
}

// Post is a blog document as served by the content store. The website never
// mutates posts; they are created and edited in the store's own studio.
type Post struct {
	ID               string          `json:"_id"`
	Title            string          `json:"title"`
	Slug             Slug            `json:"slug"`
	Excerpt          string          `json:"excerpt,omitempty"`
	Body             []Block         `json:"body,omitempty"`
	Category         string          `json:"category"`
	Image            json.RawMessage `json:"image,omitempty"`
	ExternalImageURL string          `json:"externalImageUrl,omitempty"`
	PublishedAt      time.Time       `json:"publishedAt"`
	UpdatedAt        time.Time       `json:"_updatedAt,omitempty"`
	Author           string          `json:"author,omitempty"`
}

// ImageValue decodes the raw image field into the loose shape the image
// resolver accepts (a record, a legacy string, or nil).
func (p Post) ImageValue() any {
	if len(p.Image) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(p.Image, &v); err != nil {
		return nil
	}
	return v
}

// RecentPost is the trimmed projection used by sidebars and feeds.
type RecentPost struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        Slug      `json:"slug"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category"`
}

// Block is one element of a post body's rich-content array: either a text
// block with styled spans, or an embedded image.
type Block struct {
	Key      string    `json:"_key,omitempty"`
	Type     string    `json:"_type"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`

	// Image-block fields.
	Asset       *AssetRef `json:"asset,omitempty"`
	ExternalURL string    `json:"externalUrl,omitempty"`
	Alt         string    `json:"alt,omitempty"`
}

// Span is a run of text within a block, annotated with marks.
type Span struct {
	Key   string   `json:"_key,omitempty"`
	Type  string   `json:"_type"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef resolves an annotation mark key (currently only links).
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// AssetRef points at an uploaded binary held by the content store.
type AssetRef struct {
	Ref string `json:"_ref"`
}

// Panchang is the per-date almanac record shown on the panchang page.
type Panchang struct {
	ID           string `json:"_id"`
	Date         string `json:"date"`
	Tithi        string `json:"tithi"`
	Vara         string `json:"vara"`
	Nakshatra    string `json:"nakshatra"`
	Yoga         string `json:"yoga"`
	Karana       string `json:"karana"`
	Sunrise      string `json:"sunrise,omitempty"`
	Sunset       string `json:"sunset,omitempty"`
	SpecialEvent string `json:"specialEvent,omitempty"`
}
