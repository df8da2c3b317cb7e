package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/domain"
)

type RoomService struct {
	up    domain.Upstream
	cache domain.Cache
	ttl   time.Duration
}

func NewRoomService(up domain.Upstream, cache domain.Cache, ttl time.Duration) *RoomService {
	return &RoomService{up: up, cache: cache, ttl: ttl}
}

// ListRooms returns the full room catalog. Failures propagate: an
// all-hosts-failed (or all-hosts-empty) sweep must reach the caller
// rather than render as a silently empty list.
func (s *RoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	key := cacheKey("rooms:list", nil)
	var cached []domain.Room
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	payload, err := s.up.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	rooms := mapRooms(payload)
	if len(rooms) == 0 {
		// 2xx with a non-array body; treat like an empty sweep.
		return nil, fmt.Errorf("rooms list: no usable payload from %s", payload.Host)
	}
	_ = s.cache.Set(ctx, key, rooms, s.ttl)
	return rooms, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	key := cacheKey("rooms:get", id)
	var cached domain.Room
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		return cached, nil
	}
	payload, err := s.up.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	m := asMap(payload.Data, "data", "room", "phong")
	if m == nil {
		return domain.Room{}, fmt.Errorf("room %d: unexpected payload shape", id)
	}
	room := mapRoom(m, payload.Host)
	_ = s.cache.Set(ctx, key, room, s.ttl)
	return room, nil
}

// CheckAvailability accepts both backend shapes: a bare array of
// rooms, or an object carrying a message when none are available. The
// "no rooms" case is an empty slice, never an error.
func (s *RoomService) CheckAvailability(ctx context.Context, q domain.AvailabilityQuery) ([]domain.AvailableRoom, error) {
	payload, err := s.up.CheckAvailability(ctx, q)
	if err != nil {
		return nil, err
	}
	switch data := payload.Data.(type) {
	case []any:
		out := make([]domain.AvailableRoom, 0, len(data))
		for _, m := range onlyMaps(data) {
			out = append(out, mapAvailableRoom(m, payload.Host))
		}
		return out, nil
	case map[string]any:
		if inner, ok := data["data"].([]any); ok {
			out := make([]domain.AvailableRoom, 0, len(inner))
			for _, m := range onlyMaps(inner) {
				out = append(out, mapAvailableRoom(m, payload.Host))
			}
			return out, nil
		}
		// {message: "..."} means no rooms for the window.
		return []domain.AvailableRoom{}, nil
	default:
		return []domain.AvailableRoom{}, nil
	}
}

// TopRooms serves the "most used" home section. When the ranking
// endpoint fails or comes back empty, it degrades to a random sample
// of the catalog so the section has content whenever any room exists.
func (s *RoomService) TopRooms(ctx context.Context, n int) ([]domain.Room, error) {
	if n <= 0 {
		n = 4
	}
	payload, err := s.up.TopRooms(ctx)
	if err == nil {
		if rooms := mapRooms(payload); len(rooms) > 0 {
			if len(rooms) > n {
				rooms = rooms[:n]
			}
			return rooms, nil
		}
	} else {
		log.Warn().Err(err).Msg("top rooms ranking unavailable, sampling catalog")
	}

	all, err := s.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	return sampleRooms(all, n), nil
}

func sampleRooms(rooms []domain.Room, n int) []domain.Room {
	if len(rooms) <= n {
		out := make([]domain.Room, len(rooms))
		copy(out, rooms)
		return out
	}
	idx := rand.Perm(len(rooms))[:n]
	out := make([]domain.Room, 0, n)
	for _, i := range idx {
		out = append(out, rooms[i])
	}
	return out
}
