package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/locusmaps/scoutmap/internal/config"
	"github.com/locusmaps/scoutmap/internal/geocode"
	"github.com/locusmaps/scoutmap/internal/poi"
	"github.com/locusmaps/scoutmap/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Workspace databases ---
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	workspaces := server.NewRegistry(cfg.DataDir, logger)
	defer workspaces.Close()
	logger.Info("workspace registry ready", "dir", cfg.DataDir)

	if err := server.SeedDemo(ctx, logger, workspaces); err != nil {
		return fmt.Errorf("seeding demo workspace: %w", err)
	}

	// --- POI catalog ---
	catalog := poi.NewCatalog(cfg.SourceDir, poi.NewCache(), logger)

	// --- Geocoding ---
	geocoder := geocode.NewClient(cfg.GeocodeURL)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, workspaces, catalog, geocoder, cfg.SPADir)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
