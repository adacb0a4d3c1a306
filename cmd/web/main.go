package main

import (
	"context"

	"github.com/motoflow/web-dashboard/internal/core/service"
	"github.com/motoflow/web-dashboard/internal/infrastructure/backend"
	"github.com/motoflow/web-dashboard/internal/infrastructure/config"
	sessionstore "github.com/motoflow/web-dashboard/internal/infrastructure/session"
	"github.com/motoflow/web-dashboard/internal/web"
	"github.com/motoflow/web-dashboard/internal/web/handler"
	"github.com/motoflow/web-dashboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	rdb, err := sessionstore.Connect(ctx, sessionstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("session store connection failed")
	}
	defer rdb.Close()

	sessions := service.NewSessionService(sessionstore.NewRedisStore(rdb), cfg.Session.TTL, log)
	gateway := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	e, err := web.NewRouter(web.Dependencies{
		Backend:  gateway,
		Sessions: sessions,
		Redis:    rdb,
		Cookies: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		Log: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.BaseURL).
		Msg("starting web dashboard")

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
