package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

type ReviewService struct {
	up domain.Upstream
}

func NewReviewService(up domain.Upstream) *ReviewService {
	return &ReviewService{up: up}
}

// Stats is a secondary read: failures degrade to nil so the rating
// widget disappears instead of breaking the room screen.
func (s *ReviewService) Stats(ctx context.Context, roomID int64) (*domain.ReviewStats, error) {
	payload, err := s.up.ReviewStats(ctx, roomID)
	if err != nil {
		log.Warn().Err(err).Int64("room", roomID).Msg("review stats unavailable")
		return nil, nil
	}
	m := asMap(payload.Data, "data", "stats")
	if m == nil {
		return nil, nil
	}
	st := &domain.ReviewStats{}
	for _, k := range []string{"average", "trungBinh", "avg", "averageRating"} {
		if f, ok := m[k].(float64); ok {
			st.Average = f
			break
		}
	}
	for _, k := range []string{"count", "total", "soLuong", "tongSo"} {
		if f, ok := m[k].(float64); ok {
			st.Count = int(f)
			break
		}
	}
	if by, ok := m["byStar"].(map[string]any); ok {
		st.ByStar = make(map[int]int, len(by))
		for k, v := range by {
			star, err := parseStar(k)
			if err != nil {
				continue
			}
			if f, ok := v.(float64); ok {
				st.ByStar[star] = int(f)
			}
		}
	}
	return st, nil
}

func parseStar(k string) (int, error) {
	var star int
	_, err := fmt.Sscanf(strings.TrimSpace(k), "%d", &star)
	if err != nil || star < 1 || star > 5 {
		return 0, fmt.Errorf("bad star key %q", k)
	}
	return star, nil
}

// List folds whatever paging shape the backend answers with into a
// single {items, total} page.
func (s *ReviewService) List(ctx context.Context, roomID int64, pg domain.PageQuery) (domain.ReviewPage, error) {
	if pg.Limit <= 0 {
		pg.Limit = 10
	}
	if pg.Page <= 0 {
		pg.Page = 1
	}
	payload, err := s.up.ListReviews(ctx, roomID, pg)
	if err != nil {
		return domain.ReviewPage{}, err
	}
	return normalizeReviewPage(payload.Data), nil
}

// Submit validates and sends a review. Field names follow the
// backend's camelCase writes; reads absorb whatever comes back.
func (s *ReviewService) Submit(ctx context.Context, in domain.ReviewInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	content := strings.TrimSpace(in.Content)
	if utf8.RuneCountInString(content) > domain.MaxReviewContentLen {
		return fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, domain.MaxReviewContentLen)
	}
	body := map[string]any{
		"idPhong": in.RoomID,
		"soSao":   in.Rating,
		"tieuDe":  strings.TrimSpace(in.Title),
		"noiDung": content,
		"anDanh":  in.Anonymous,
	}
	if in.BookingID != 0 {
		body["idDatPhong"] = in.BookingID
	}
	if _, err := s.up.SubmitReview(ctx, body); err != nil {
		return fmt.Errorf("submit review: %w", err)
	}
	return nil
}

// Status reports whether the booking has already been reviewed.
func (s *ReviewService) Status(ctx context.Context, bookingID int64) (bool, error) {
	payload, err := s.up.ReviewStatus(ctx, bookingID)
	if err != nil {
		return false, err
	}
	m := asMap(payload.Data, "data")
	if m == nil {
		return false, nil
	}
	for _, k := range []string{"reviewed", "daDanhGia", "hasReview", "exists"} {
		if v, ok := m[k]; ok {
			return truthy(v), nil
		}
	}
	return false, nil
}
