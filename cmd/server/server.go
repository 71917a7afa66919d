package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"apkraft/internal/config"
	"apkraft/internal/domain/platform"
	"apkraft/internal/infrastructure/logger"
	"apkraft/internal/infrastructure/observability"
	"apkraft/internal/infrastructure/seed"
	"apkraft/internal/interfaces/httpserver"
)

// @title apkraft API
// @version 1.0
// @description Catalog of mobile apps, their APK releases and uploaded files.
// @BasePath /
type Application struct {
	cfg        *config.Config
	httpServer *httpserver.HttpServer
	platforms  *platform.Service
	log        zerolog.Logger
}

func NewApplication(cfg *config.Config, httpServer *httpserver.HttpServer, platforms *platform.Service, log zerolog.Logger) *Application {
	return &Application{
		cfg:        cfg,
		httpServer: httpServer,
		platforms:  platforms,
		log:        log,
	}
}

// Start seeds reference data and serves HTTP until ctx is cancelled.
func (a *Application) Start(ctx context.Context) error {
	if err := seed.SeedPlatforms(ctx, a.cfg.PlatformSeedFile, a.platforms, a.log); err != nil {
		return fmt.Errorf("seed platforms: %w", err)
	}
	return a.httpServer.Run(ctx)
}

func runServe(cmd *cobra.Command, args []string) error {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	app, err := BuildApplication(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("build application")
		return err
	}

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return err
	}

	log.Info().Msg("application exited cleanly")
	return nil
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
