// The warmer pre-populates the gateway cache before traffic arrives:
// room catalog, per-type availability, promotions and blog listing are
// fetched once through the same services the gateway serves from.
package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_gateway/internal/adapters/backend"
	"hotel_gateway/internal/adapters/memcache"
	"hotel_gateway/internal/adapters/observability"
	redisad "hotel_gateway/internal/adapters/redis"
	"hotel_gateway/internal/adapters/tokenstore"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
	"hotel_gateway/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, "warmer")

	log.Info().
		Strs("hosts", cfg.BaseURLs).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	var cache domain.Cache = memcache.New()
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	exec := backend.NewExecutor(tokenstore.New(), cfg.UpstreamRPS)
	upstream, err := backend.New(cfg.BaseURLs, exec)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}

	rooms := app.NewRoomService(upstream, cache, cfg.CacheTTL)
	blog := app.NewBlogService(upstream, cache, cfg.CacheTTL)
	promos := app.NewPromotionService(upstream, cache, cfg.CacheTTL)

	// Primary flow first: a failed room warm means the backend is down
	// and the run should say so.
	catalog, err := rooms.ListRooms(ctx)
	if err != nil {
		log.Error().Err(err).Msg("room catalog warm failed")
		os.Exit(1)
	}
	log.Info().Int("rooms", len(catalog)).Msg("room catalog warmed")

	// Secondary warms run concurrently, bounded.
	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	warm := func(name string, fn func(context.Context) error) {
		if err := sem.Acquire(ctx, 1); err != nil {
			return
		}
		go func() {
			defer sem.Release(1)
			start := time.Now()
			if err := fn(ctx); err != nil {
				log.Warn().Err(err).Str("warm", name).Msg("warm failed")
				return
			}
			log.Info().Str("warm", name).Dur("took", time.Since(start)).Msg("warmed")
		}()
	}

	warm("promotions", func(ctx context.Context) error {
		promos.ListPromotions(ctx)
		return nil
	})
	warm("blog", func(ctx context.Context) error {
		_, err := blog.ListPosts(ctx)
		return err
	})

	seen := map[int64]struct{}{}
	checkIn := time.Now().Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	for _, r := range catalog {
		typeID := r.TypeID
		if _, dup := seen[typeID]; dup || typeID == 0 {
			continue
		}
		seen[typeID] = struct{}{}
		warm("availability", func(ctx context.Context) error {
			_, err := rooms.CheckAvailability(ctx, domain.AvailabilityQuery{
				TypeID: typeID, CheckIn: checkIn, CheckOut: checkOut,
			})
			return err
		})
	}

	// drain
	if err := sem.Acquire(ctx, int64(cfg.WarmWorkers)); err != nil {
		log.Fatal().Err(err).Msg("drain failed")
	}
	log.Info().Msg("warmer done")
}
