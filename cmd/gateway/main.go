package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_gateway/internal/adapters/backend"
	server "hotel_gateway/internal/adapters/http_server"
	"hotel_gateway/internal/adapters/memcache"
	"hotel_gateway/internal/adapters/observability"
	redisad "hotel_gateway/internal/adapters/redis"
	"hotel_gateway/internal/adapters/tokenstore"
	"hotel_gateway/internal/app"
	"hotel_gateway/internal/domain"
	"hotel_gateway/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "gateway")

	observability.Serve(cfg.MetricsAddr)

	tokens := tokenstore.New()

	// cache: in-process by default, Redis when an address is set
	var cache domain.Cache = memcache.New()
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	}

	exec := backend.NewExecutor(tokens, cfg.UpstreamRPS)
	upstream, err := backend.New(cfg.BaseURLs, exec)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}
	log.Info().Strs("hosts", cfg.BaseURLs).Msg("backend hosts configured")

	h := &server.Handlers{
		Rooms:    app.NewRoomService(upstream, cache, cfg.CacheTTL),
		Auth:     app.NewAuthService(upstream, tokens),
		Blog:     app.NewBlogService(upstream, cache, cfg.CacheTTL),
		Promos:   app.NewPromotionService(upstream, cache, cfg.CacheTTL),
		Reviews:  app.NewReviewService(upstream),
		Bookings: app.NewBookingService(upstream),
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("gateway listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
