package domain

// Room is the canonical client-side shape for a hotel room. Backend
// payloads arrive with mixed field casing; normalization in the app
// layer maps them here.
type Room struct {
	ID                int64       `json:"id"`
	TypeID            int64       `json:"typeId"`
	Name              string      `json:"name"`
	RoomNumber        string      `json:"roomNumber"`
	Description       string      `json:"description"`
	MaxOccupancy      int         `json:"maxOccupancy"`
	BasePricePerNight float64     `json:"basePricePerNight"` // >= 0
	StarRating        float64     `json:"starRating"`        // [0,5]
	Status            string      `json:"status"`
	ImageURL          string      `json:"imageUrl"`
	Amenities         []string    `json:"amenities,omitempty"`
	Promotions        []Promotion `json:"promotions,omitempty"`
}

// AvailableRoom is the projection returned by availability queries.
// It is never cached or persisted.
type AvailableRoom struct {
	ID                int64   `json:"id"`
	TypeID            int64   `json:"typeId"`
	Name              string  `json:"name"`
	RoomNumber        string  `json:"roomNumber"`
	MaxOccupancy      int     `json:"maxOccupancy"`
	BasePricePerNight float64 `json:"basePricePerNight"`
	ImageURL          string  `json:"imageUrl"`
}

// AvailabilityQuery identifies a by-type availability lookup.
// Dates are exchanged as backend-formatted strings (YYYY-MM-DD).
type AvailabilityQuery struct {
	TypeID   int64  `json:"typeId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}
