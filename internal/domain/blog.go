package domain

import "time"

const (
	BlogKindInternal = "internal"
	BlogKindExternal = "external"

	BlogStatusPublished = "PUBLISHED"
)

// BlogPost is fetched read-only. Status filtering and display
// ordering happen client-side after normalization.
type BlogPost struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Kind         string     `json:"kind"` // internal|external
	Slug         string     `json:"slug"`
	ImageURL     string     `json:"imageUrl"`
	Images       []string   `json:"images,omitempty"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content"`
	Status       string     `json:"status"`
	DisplayOrder *int       `json:"displayOrder,omitempty"` // nil sorts last
	ViewCount    int64      `json:"viewCount"`
}
