package domain

import "time"

// Discount kinds. Percent values are clamped to [0,100] during
// normalization.
const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

type Promotion struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	DiscountKind  string     `json:"discountKind"` // percent|amount
	DiscountValue float64    `json:"discountValue"`
	StartsAt      *time.Time `json:"startsAt,omitempty"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
}

// Active reports whether the promotion is inside its validity window
// at t. A missing bound is treated as open-ended.
func (p Promotion) Active(t time.Time) bool {
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return false
	}
	return true
}
