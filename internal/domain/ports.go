package domain

import (
	"context"
	"time"
)

// Payload is a raw decoded upstream response plus the base URL of the
// host that served it. The host matters: relative image paths are
// resolved against the host that produced the data, which differs per
// environment.
type Payload struct {
	Data any
	Host string
}

// Upstream is the resolving backend client: each call sweeps the
// configured hosts in order and returns the first usable response.
type Upstream interface {
	ListRooms(ctx context.Context) (Payload, error)
	GetRoom(ctx context.Context, id int64) (Payload, error)
	CheckAvailability(ctx context.Context, q AvailabilityQuery) (Payload, error)
	TopRooms(ctx context.Context) (Payload, error)

	ListPromotions(ctx context.Context) (Payload, error)

	ListBlogPosts(ctx context.Context) (Payload, error)
	GetBlogPost(ctx context.Context, slug string) (Payload, error)
	IncrementBlogView(ctx context.Context, id int64) error

	ReviewStats(ctx context.Context, roomID int64) (Payload, error)
	ListReviews(ctx context.Context, roomID int64, pg PageQuery) (Payload, error)
	SubmitReview(ctx context.Context, body map[string]any) (Payload, error)
	ReviewStatus(ctx context.Context, bookingID int64) (Payload, error)

	Login(ctx context.Context, body map[string]any) (Payload, error)
	Register(ctx context.Context, body map[string]any) (Payload, error)
	GetProfile(ctx context.Context) (Payload, error)
	UpdateProfile(ctx context.Context, body map[string]any) (Payload, error)
	Loyalty(ctx context.Context) (Payload, error)
	ListBookings(ctx context.Context) (Payload, error)
}

// Cache is the TTL cache port. Stale entries are reported as misses
// and overwritten by the next Set, never proactively evicted.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// TokenStore holds the bearer token for the current session. The
// mechanics of secure storage live outside this module.
type TokenStore interface {
	GetToken() string
	SetToken(token string)
	ClearToken()
}
