package backend

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/adapters/observability"
	"hotel_gateway/internal/domain"
)

// Per-operation attempt bounds. Listing and availability sweep fast so
// a dead host costs little; auth may sit behind slow hashing.
const (
	roomTimeout = 2 * time.Second
	authTimeout = 10 * time.Second
)

// Client resolves each logical operation against an ordered list of
// base URLs: hosts are tried strictly sequentially until one returns a
// usable response. It implements domain.Upstream.
type Client struct {
	hosts []string
	exec  *Executor
}

var _ domain.Upstream = (*Client)(nil)

func New(hosts []string, exec *Executor) (*Client, error) {
	if len(hosts) == 0 {
		return nil, fmt.Errorf("at least one base URL is required")
	}
	return &Client{hosts: hosts, exec: exec}, nil
}

// sweepOpts tunes one sweep.
type sweepOpts struct {
	timeout time.Duration
	// rejectEmptyList treats a 2xx empty array as a soft failure and
	// moves on; a host with an empty database should not win the sweep.
	rejectEmptyList bool
	// allowEmptyBody accepts a 2xx with no body (write-style ops).
	allowEmptyBody bool
}

func (c *Client) sweep(ctx context.Context, op, method, path string, body any, o sweepOpts) (domain.Payload, error) {
	attempts := make([]AttemptError, 0, len(c.hosts))
	for _, host := range c.hosts {
		start := time.Now()
		payload, err := c.exec.Do(ctx, method, host+path, body, o.timeout)
		if err != nil {
			if ctx.Err() != nil {
				return domain.Payload{}, ctx.Err()
			}
			observability.ObserveSweep(op, host, outcomeOf(err), time.Since(start))
			log.Warn().Str("op", op).Str("host", host).Err(err).Msg("sweep attempt failed")
			attempts = append(attempts, AttemptError{Host: host, Err: err})
			continue
		}
		if !usable(payload, o) {
			observability.ObserveSweep(op, host, "empty", time.Since(start))
			log.Warn().Str("op", op).Str("host", host).Msg("sweep attempt returned empty result")
			attempts = append(attempts, AttemptError{Host: host, Err: errEmptyResult})
			continue
		}
		observability.ObserveSweep(op, host, "ok", time.Since(start))
		log.Debug().Str("op", op).Str("host", host).Dur("took", time.Since(start)).Msg("sweep attempt ok")
		return domain.Payload{Data: payload, Host: host}, nil
	}
	return domain.Payload{}, &SweepError{Op: op, Attempts: attempts}
}

func usable(payload any, o sweepOpts) bool {
	if payload == nil {
		return o.allowEmptyBody
	}
	if o.rejectEmptyList {
		if arr, ok := payload.([]any); ok && len(arr) == 0 {
			return false
		}
	}
	return true
}

func outcomeOf(err error) string {
	switch err.(type) {
	case *TimeoutError:
		return "timeout"
	case *HTTPError:
		return "http"
	case *NetworkError:
		return "network"
	default:
		return "error"
	}
}

/********** rooms **********/

func (c *Client) ListRooms(ctx context.Context) (domain.Payload, error) {
	// Empty-array hosts are skipped: an all-empty sweep fails loudly
	// so backend trouble surfaces instead of an empty screen.
	return c.sweep(ctx, "rooms.list", "GET", "/api/rooms", nil,
		sweepOpts{timeout: roomTimeout, rejectEmptyList: true})
}

func (c *Client) GetRoom(ctx context.Context, id int64) (domain.Payload, error) {
	return c.sweep(ctx, "rooms.get", "GET", fmt.Sprintf("/api/rooms/%d", id), nil,
		sweepOpts{timeout: roomTimeout})
}

func (c *Client) CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) (domain.Payload, error) {
	path := fmt.Sprintf("/api/rooms/availability?typeId=%d&checkIn=%s&checkOut=%s",
		q.TypeID, url.QueryEscape(q.CheckIn), url.QueryEscape(q.CheckOut))
	// A "no rooms" answer arrives as {message:...}; that is a usable
	// body, not an empty result.
	return c.sweep(ctx, "rooms.availability", "GET", path, nil,
		sweepOpts{timeout: roomTimeout})
}

func (c *Client) TopRooms(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "rooms.top", "GET", "/api/rooms/top-usage", nil,
		sweepOpts{timeout: roomTimeout, rejectEmptyList: true})
}

/********** promotions **********/

func (c *Client) ListPromotions(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "promotions.list", "GET", "/api/promotions", nil, sweepOpts{})
}

/********** blog **********/

func (c *Client) ListBlogPosts(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "blog.list", "GET", "/api/blogs", nil, sweepOpts{})
}

func (c *Client) GetBlogPost(ctx context.Context, slug string) (domain.Payload, error) {
	return c.sweep(ctx, "blog.get", "GET", "/api/blogs/"+url.PathEscape(slug), nil, sweepOpts{})
}

func (c *Client) IncrementBlogView(ctx context.Context, id int64) error {
	_, err := c.sweep(ctx, "blog.view", "POST", fmt.Sprintf("/api/blogs/%d/view", id), nil,
		sweepOpts{allowEmptyBody: true})
	return err
}

/********** reviews **********/

func (c *Client) ReviewStats(ctx context.Context, roomID int64) (domain.Payload, error) {
	return c.sweep(ctx, "reviews.stats", "GET", fmt.Sprintf("/api/reviews/stats?roomId=%d", roomID), nil, sweepOpts{})
}

func (c *Client) ListReviews(ctx context.Context, roomID int64, pg domain.PageQuery) (domain.Payload, error) {
	path := fmt.Sprintf("/api/reviews?roomId=%d&page=%d&limit=%d", roomID, pg.Page, pg.Limit)
	return c.sweep(ctx, "reviews.list", "GET", path, nil, sweepOpts{})
}

func (c *Client) SubmitReview(ctx context.Context, body map[string]any) (domain.Payload, error) {
	return c.sweep(ctx, "reviews.submit", "POST", "/api/reviews", body,
		sweepOpts{allowEmptyBody: true})
}

func (c *Client) ReviewStatus(ctx context.Context, bookingID int64) (domain.Payload, error) {
	return c.sweep(ctx, "reviews.status", "GET", fmt.Sprintf("/api/reviews/status?bookingId=%d", bookingID), nil, sweepOpts{})
}

/********** auth & profile **********/

func (c *Client) Login(ctx context.Context, body map[string]any) (domain.Payload, error) {
	return c.sweep(ctx, "auth.login", "POST", "/api/auth/login", body,
		sweepOpts{timeout: authTimeout})
}

func (c *Client) Register(ctx context.Context, body map[string]any) (domain.Payload, error) {
	return c.sweep(ctx, "auth.register", "POST", "/api/auth/register", body,
		sweepOpts{timeout: authTimeout})
}

func (c *Client) GetProfile(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "auth.profile", "GET", "/api/customers/profile", nil,
		sweepOpts{timeout: authTimeout})
}

func (c *Client) UpdateProfile(ctx context.Context, body map[string]any) (domain.Payload, error) {
	return c.sweep(ctx, "auth.profile.update", "PUT", "/api/customers/profile", body,
		sweepOpts{timeout: authTimeout, allowEmptyBody: true})
}

func (c *Client) Loyalty(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "auth.loyalty", "GET", "/api/customers/loyalty", nil,
		sweepOpts{timeout: authTimeout})
}

func (c *Client) ListBookings(ctx context.Context) (domain.Payload, error) {
	return c.sweep(ctx, "bookings.list", "GET", "/api/bookings", nil,
		sweepOpts{timeout: authTimeout})
}
