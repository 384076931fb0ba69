package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"levefit-companion/internal/config"
	pg "levefit-companion/internal/infra/db/postgres"
	"levefit-companion/internal/infra/logging"
	"levefit-companion/internal/infra/metrics"
	red "levefit-companion/internal/infra/redis"
	"levefit-companion/internal/infra/sched"
	"levefit-companion/internal/infra/web"
	"levefit-companion/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, dev token endpoint)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("dev mode enabled")
	}

	metrics.Register()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional; absence degrades to store-only paths) ----
	var rateLimiter *red.RateLimiter
	var markerCache *red.MarkerCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
		markerCache = red.NewMarkerCache(redisClient, cfg.Redis.TTL)
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting and marker cache disabled")
	}

	loc, err := time.LoadLocation(cfg.Journey.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", cfg.Journey.Timezone).Msg("invalid journey timezone")
	}

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	codeRepo := pg.NewAccessCodeRepo(pool)
	profileRepo := pg.NewProfileRepo(pool)
	markerRepo := pg.NewJourneyMarkerRepo(pool)
	progressRepo := pg.NewProgressRepo(pool)
	walletRepo := pg.NewWalletRepo(pool)
	referralRepo := pg.NewReferralRepo(pool)

	// ---- Use cases ----
	accessUC := usecase.NewAccessUseCase(codeRepo, profileRepo, tm, cfg.Store.Timeout, logger)
	profileUC := usecase.NewProfileUseCase(profileRepo, tm, cfg.Store.Timeout, logger)
	var cache usecase.MarkerCache
	if markerCache != nil {
		cache = markerCache
	}
	journeyUC := usecase.NewJourneyUseCase(markerRepo, profileRepo, cache, loc, cfg.Store.Timeout, logger)
	progressUC := usecase.NewProgressUseCase(progressRepo, tm, loc, cfg.Store.Timeout, logger)
	walletUC := usecase.NewWalletUseCase(walletRepo, referralRepo, tm, cfg.Journey.ReferralBase, cfg.Store.Timeout, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.Secret, !cfg.Runtime.Dev, cfg.Auth.TTL)
	srv := web.NewServer(accessUC, profileUC, journeyUC, progressUC, walletUC, auth, rateLimiter, cfg.Admin.APIKey, cfg.Runtime.Dev, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Journey sweep worker ----
	worker := sched.NewJourneySweepWorker(cfg.Journey.SweepEvery, journeyUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	if err := server.Shutdown(shCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
