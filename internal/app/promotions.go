package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

type PromotionService struct {
	up    domain.Upstream
	cache domain.Cache
	ttl   time.Duration
}

func NewPromotionService(up domain.Upstream, cache domain.Cache, ttl time.Duration) *PromotionService {
	return &PromotionService{up: up, cache: cache, ttl: ttl}
}

// ListPromotions degrades to an empty list on failure: the promo strip
// is a secondary section and must not take the home screen down.
func (s *PromotionService) ListPromotions(ctx context.Context) []domain.Promotion {
	key := cacheKey("promotions:list", nil)
	var cached []domain.Promotion
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached
	}
	payload, err := s.up.ListPromotions(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("promotions unavailable")
		return nil
	}
	out := make([]domain.Promotion, 0)
	for _, m := range asMaps(payload.Data) {
		out = append(out, mapPromotion(m))
	}
	_ = s.cache.Set(ctx, key, out, s.ttl)
	return out
}

// ActivePromotions filters the list to the current validity window.
func (s *PromotionService) ActivePromotions(ctx context.Context, now time.Time) []domain.Promotion {
	all := s.ListPromotions(ctx)
	out := make([]domain.Promotion, 0, len(all))
	for _, p := range all {
		if p.Active(now) {
			out = append(out, p)
		}
	}
	return out
}
