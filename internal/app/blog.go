package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

type BlogService struct {
	up    domain.Upstream
	cache domain.Cache
	ttl   time.Duration
}

func NewBlogService(up domain.Upstream, cache domain.Cache, ttl time.Duration) *BlogService {
	return &BlogService{up: up, cache: cache, ttl: ttl}
}

// ListPosts returns published posts in display order. Filtering and
// ordering happen here, after normalization; the backend's own order
// is not trusted.
func (s *BlogService) ListPosts(ctx context.Context) ([]domain.BlogPost, error) {
	key := cacheKey("blog:list", nil)
	var cached []domain.BlogPost
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	payload, err := s.up.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]domain.BlogPost, 0)
	for _, m := range asMaps(payload.Data) {
		p := mapBlogPost(m, payload.Host)
		if p.Status == domain.BlogStatusPublished {
			posts = append(posts, p)
		}
	}
	sortPosts(posts)
	_ = s.cache.Set(ctx, key, posts, s.ttl)
	return posts, nil
}

// sortPosts orders by displayOrder ascending; posts without one sort
// last, ties broken by newest publish date.
func sortPosts(posts []domain.BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		oi, oj := posts[i].DisplayOrder, posts[j].DisplayOrder
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		pi, pj := posts[i].PublishedAt, posts[j].PublishedAt
		if pi != nil && pj != nil {
			return pi.After(*pj)
		}
		return pi != nil
	})
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (domain.BlogPost, error) {
	payload, err := s.up.GetBlogPost(ctx, slug)
	if err != nil {
		return domain.BlogPost{}, err
	}
	m := asMap(payload.Data, "data", "post", "baiViet")
	if m == nil {
		return domain.BlogPost{}, fmt.Errorf("blog post %q: unexpected payload shape", slug)
	}
	return mapBlogPost(m, payload.Host), nil
}

// IncrementView is fire-and-forget: a lost view count must never
// surface to the reader.
func (s *BlogService) IncrementView(ctx context.Context, id int64) {
	if err := s.up.IncrementBlogView(ctx, id); err != nil {
		log.Debug().Err(err).Int64("post", id).Msg("view increment failed")
	}
}
