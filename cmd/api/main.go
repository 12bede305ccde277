package main

import (
	"context"
	"time"

	"recordshop-backend/internal/app"
	"recordshop-backend/internal/config"
	"recordshop-backend/internal/discogs"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}

	fiberApp, db, rdb, syncService, err := app.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("get DB")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Postgres connection failed")
	}
	log.Info().Msg("Postgres connected")

	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		log.Info().Msg("Redis connected")
	}

	if cfg.EnableAutoSync && cfg.DiscogsToken != "" {
		scheduler := &discogs.Scheduler{
			Service:  syncService,
			Interval: time.Duration(cfg.SyncIntervalHours) * time.Hour,
		}
		go scheduler.Run(context.Background())
	} else if cfg.DiscogsToken == "" {
		log.Warn().Msg("DISCOGS_TOKEN not set. Auto-sync disabled.")
	} else {
		log.Info().Msg("Auto-sync is disabled. Set ENABLE_AUTO_SYNC=true to enable.")
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set. Label overviews disabled.")
	}

	log.Info().Str("port", cfg.Port).Msg("Server running")
	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
