package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hotel_gateway/internal/domain"
)

// fakeUpstream implements domain.Upstream with per-operation hooks;
// unset hooks fail so tests only wire what they exercise.
type fakeUpstream struct {
	listRooms    func(ctx context.Context) (domain.Payload, error)
	getRoom      func(ctx context.Context, id int64) (domain.Payload, error)
	availability func(ctx context.Context, q domain.AvailabilityQuery) (domain.Payload, error)
	topRooms     func(ctx context.Context) (domain.Payload, error)
	promotions   func(ctx context.Context) (domain.Payload, error)
	blogList     func(ctx context.Context) (domain.Payload, error)
	blogGet      func(ctx context.Context, slug string) (domain.Payload, error)
	blogView     func(ctx context.Context, id int64) error
	revStats     func(ctx context.Context, roomID int64) (domain.Payload, error)
	revList      func(ctx context.Context, roomID int64, pg domain.PageQuery) (domain.Payload, error)
	revSubmit    func(ctx context.Context, body map[string]any) (domain.Payload, error)
	revStatus    func(ctx context.Context, bookingID int64) (domain.Payload, error)
	login        func(ctx context.Context, body map[string]any) (domain.Payload, error)
	register     func(ctx context.Context, body map[string]any) (domain.Payload, error)
	profile      func(ctx context.Context) (domain.Payload, error)
	updProfile   func(ctx context.Context, body map[string]any) (domain.Payload, error)
	loyalty      func(ctx context.Context) (domain.Payload, error)
	bookings     func(ctx context.Context) (domain.Payload, error)
}

var errNotWired = errors.New("operation not wired in fake")

func (f *fakeUpstream) ListRooms(ctx context.Context) (domain.Payload, error) {
	if f.listRooms == nil {
		return domain.Payload{}, errNotWired
	}
	return f.listRooms(ctx)
}

func (f *fakeUpstream) GetRoom(ctx context.Context, id int64) (domain.Payload, error) {
	if f.getRoom == nil {
		return domain.Payload{}, errNotWired
	}
	return f.getRoom(ctx, id)
}

func (f *fakeUpstream) CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) (domain.Payload, error) {
	if f.availability == nil {
		return domain.Payload{}, errNotWired
	}
	return f.availability(ctx, q)
}

func (f *fakeUpstream) TopRooms(ctx context.Context) (domain.Payload, error) {
	if f.topRooms == nil {
		return domain.Payload{}, errNotWired
	}
	return f.topRooms(ctx)
}

func (f *fakeUpstream) ListPromotions(ctx context.Context) (domain.Payload, error) {
	if f.promotions == nil {
		return domain.Payload{}, errNotWired
	}
	return f.promotions(ctx)
}

func (f *fakeUpstream) ListBlogPosts(ctx context.Context) (domain.Payload, error) {
	if f.blogList == nil {
		return domain.Payload{}, errNotWired
	}
	return f.blogList(ctx)
}

func (f *fakeUpstream) GetBlogPost(ctx context.Context, slug string) (domain.Payload, error) {
	if f.blogGet == nil {
		return domain.Payload{}, errNotWired
	}
	return f.blogGet(ctx, slug)
}

func (f *fakeUpstream) IncrementBlogView(ctx context.Context, id int64) error {
	if f.blogView == nil {
		return errNotWired
	}
	return f.blogView(ctx, id)
}

func (f *fakeUpstream) ReviewStats(ctx context.Context, roomID int64) (domain.Payload, error) {
	if f.revStats == nil {
		return domain.Payload{}, errNotWired
	}
	return f.revStats(ctx, roomID)
}

func (f *fakeUpstream) ListReviews(ctx context.Context, roomID int64, pg domain.PageQuery) (domain.Payload, error) {
	if f.revList == nil {
		return domain.Payload{}, errNotWired
	}
	return f.revList(ctx, roomID, pg)
}

func (f *fakeUpstream) SubmitReview(ctx context.Context, body map[string]any) (domain.Payload, error) {
	if f.revSubmit == nil {
		return domain.Payload{}, errNotWired
	}
	return f.revSubmit(ctx, body)
}

func (f *fakeUpstream) ReviewStatus(ctx context.Context, bookingID int64) (domain.Payload, error) {
	if f.revStatus == nil {
		return domain.Payload{}, errNotWired
	}
	return f.revStatus(ctx, bookingID)
}

func (f *fakeUpstream) Login(ctx context.Context, body map[string]any) (domain.Payload, error) {
	if f.login == nil {
		return domain.Payload{}, errNotWired
	}
	return f.login(ctx, body)
}

func (f *fakeUpstream) Register(ctx context.Context, body map[string]any) (domain.Payload, error) {
	if f.register == nil {
		return domain.Payload{}, errNotWired
	}
	return f.register(ctx, body)
}

func (f *fakeUpstream) GetProfile(ctx context.Context) (domain.Payload, error) {
	if f.profile == nil {
		return domain.Payload{}, errNotWired
	}
	return f.profile(ctx)
}

func (f *fakeUpstream) UpdateProfile(ctx context.Context, body map[string]any) (domain.Payload, error) {
	if f.updProfile == nil {
		return domain.Payload{}, errNotWired
	}
	return f.updProfile(ctx, body)
}

func (f *fakeUpstream) Loyalty(ctx context.Context) (domain.Payload, error) {
	if f.loyalty == nil {
		return domain.Payload{}, errNotWired
	}
	return f.loyalty(ctx)
}

func (f *fakeUpstream) ListBookings(ctx context.Context) (domain.Payload, error) {
	if f.bookings == nil {
		return domain.Payload{}, errNotWired
	}
	return f.bookings(ctx)
}

// jsonPayload decodes a raw JSON fixture into a Payload served by host.
func jsonPayload(t *testing.T, raw, host string) domain.Payload {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return domain.Payload{Data: v, Host: host}
}
