package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agriscan/platform/internal/dashboard/client"
	"github.com/agriscan/platform/internal/dashboard/session"
	"github.com/agriscan/platform/internal/dashboard/tokenstore"
	"github.com/agriscan/platform/internal/dashboard/web"
	"github.com/agriscan/platform/internal/pkg/config"
	"github.com/agriscan/platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "dashboard",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})
	log.Info().
		Str("api", cfg.Dashboard.APIBaseURL).
		Str("port", cfg.Dashboard.Port).
		Msg("starting agriscan dashboard")

	tokens, err := tokenstore.NewFileStore(cfg.Dashboard.TokenPath)
	if err != nil {
		log.Fatal().Err(err).Msg("token store")
	}

	api := client.New(cfg.Dashboard.APIBaseURL, tokens)
	nav := web.NewNavRecorder()
	sess := session.NewManager(api, tokens, nav, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Resolve any stored token before the first page is served. Pages hit
	// while this runs get the loading placeholder from the gate.
	go func() {
		bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		sess.Bootstrap(bootCtx)
	}()

	srv, err := web.NewServer(sess, api, nav, log)
	if err != nil {
		log.Fatal().Err(err).Msg("web server")
	}

	go func() {
		if err := srv.Start(":" + cfg.Dashboard.Port); err != nil {
			log.Info().Err(err).Msg("web server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Echo().Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("agriscan dashboard stopped")
}
