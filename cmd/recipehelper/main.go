// Recipe Helper - Ingredient Search, Favorites and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recipehelper

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/recipehelper/internal/api"
	"github.com/tomtom215/recipehelper/internal/cache"
	"github.com/tomtom215/recipehelper/internal/cli"
	"github.com/tomtom215/recipehelper/internal/config"
	"github.com/tomtom215/recipehelper/internal/database"
	"github.com/tomtom215/recipehelper/internal/events"
	"github.com/tomtom215/recipehelper/internal/logging"
	"github.com/tomtom215/recipehelper/internal/metrics"
	"github.com/tomtom215/recipehelper/internal/middleware"
	"github.com/tomtom215/recipehelper/internal/service"
	"github.com/tomtom215/recipehelper/internal/spoonacular"
	"github.com/tomtom215/recipehelper/internal/supervisor"
	"github.com/tomtom215/recipehelper/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	modeServe = "serve"
	modeMenu  = "menu"
)

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [serve|menu]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	mode := modeServe
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}
	if mode != modeServe && mode != modeMenu {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	if err := run(mode, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Str("mode", mode).Msg("Recipe helper failed")
	}
}

// app holds the components shared by both modes.
type app struct {
	db      *database.DB
	details *cache.BadgerCache
	breaker *spoonacular.CircuitBreakerClient
	finder  spoonacular.Finder
	bus     *events.Bus
	svc     *service.RecipeService
}

func newApp(cfg *config.Config) (*app, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logging.Info().Str("path", db.Path()).Msg("Favorites store initialized")

	a := &app{db: db}

	a.breaker = spoonacular.NewCircuitBreakerClient(spoonacular.NewClient(&cfg.Spoonacular), spoonacular.DefaultBreakerConfig())
	a.finder = a.breaker

	if cfg.Cache.Enabled {
		details, err := cache.Open(&cfg.Cache)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("open details cache: %w", err)
		}
		a.details = details
		a.finder = spoonacular.NewCachedFinder(a.breaker, details)
		logging.Info().Bool("in_memory", cfg.Cache.InMemory).Dur("ttl", cfg.Cache.TTL).Msg("Recipe details cache enabled")
	}

	a.bus = events.NewBus(events.DefaultBusConfig())
	a.svc = service.NewRecipeService(a.finder, db, a.bus)
	return a, nil
}

// close releases resources in reverse order of creation.
func (a *app) close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if a.details != nil {
		if err := a.details.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing details cache")
		}
	}
	if err := a.db.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing database")
	}
}

func run(mode string, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	pingCtx, pingCancel := context.WithTimeout(ctx, cfg.Spoonacular.Timeout)
	if err := a.finder.Ping(pingCtx); err != nil {
		logging.Warn().Err(err).Msg("Recipe API unreachable, lookups will return empty results")
	}
	pingCancel()

	if mode == modeMenu {
		return runMenu(ctx, a)
	}
	return runServer(ctx, cfg, a)
}

// runMenu runs the terminal menu. Reading stdin cannot be interrupted, so
// a signal returns immediately and leaves the reader goroutine behind.
func runMenu(ctx context.Context, a *app) error {
	done := make(chan error, 1)
	go func() {
		done <- cli.NewMenu(a.svc, os.Stdin, os.Stdout).Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func runServer(ctx context.Context, cfg *config.Config, a *app) error {
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	perfMon := middleware.NewPerformanceMonitor(0, 0)
	handler := api.NewHandler(a.svc, api.HandlerConfig{
		Version:      version,
		BreakerState: a.breaker.State,
		PerfMon:      perfMon,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))

	server := &http.Server{
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewComponentSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if a.details != nil {
		tree.AddDataService(services.NewCacheGCService(a.details, cfg.Cache.GCInterval))
	}

	gauge := events.FavoritesGaugeHandler(a.svc)
	onEvent := gauge
	if a.details != nil {
		onEvent = events.Chain(gauge, events.DetailsEvictionHandler(a.details))
	}
	tree.AddMessagingService(events.NewConsumer(a.bus, onEvent).OnStart(gauge))

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", cfg.Server.Addr()).Str("version", version).Msg("Starting recipe helper server")

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err := a.db.Checkpoint(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Final checkpoint failed")
	}
	logging.Info().Msg("Recipe helper stopped")
	return nil
}
