package domain

import "time"

// MaxReviewContentLen bounds free-text review content, counted in
// runes so Vietnamese text is not penalized for its byte width.
const MaxReviewContentLen = 2000

type Review struct {
	ID         int64      `json:"id"`
	RoomID     int64      `json:"roomId,omitempty"`
	Rating     int        `json:"rating"` // 1..5
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Anonymous  bool       `json:"anonymous"`
	AuthorName string     `json:"authorName"` // derived, see app normalization
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// ReviewPage is the single shape every backend paging variant is
// normalized into.
type ReviewPage struct {
	Items []Review `json:"items"`
	Total int      `json:"total"`
}

type ReviewStats struct {
	Average float64     `json:"average"`
	Count   int         `json:"count"`
	ByStar  map[int]int `json:"byStar,omitempty"`
}

// ReviewInput is a client-submitted review.
type ReviewInput struct {
	RoomID    int64  `json:"roomId"`
	BookingID int64  `json:"bookingId,omitempty"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Anonymous bool   `json:"anonymous"`
}

type PageQuery struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}
