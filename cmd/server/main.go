package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/nijamuddin66526-boop/offerzon/internal/admin"
	"github.com/nijamuddin66526-boop/offerzon/internal/assistant"
	"github.com/nijamuddin66526-boop/offerzon/internal/auth"
	"github.com/nijamuddin66526-boop/offerzon/internal/catalog"
	"github.com/nijamuddin66526-boop/offerzon/internal/config"
	"github.com/nijamuddin66526-boop/offerzon/internal/enrich"
	"github.com/nijamuddin66526-boop/offerzon/internal/models"
	"github.com/nijamuddin66526-boop/offerzon/internal/seed"
	"github.com/nijamuddin66526-boop/offerzon/internal/server"
	"github.com/nijamuddin66526-boop/offerzon/internal/storage"
	"github.com/nijamuddin66526-boop/offerzon/internal/ws"
)

func main() {
	slog.Info("Starting OfferZon server...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// The storefront always has something to show: seed data first, replaced
	// wholesale by listing-store snapshots once the watcher connects.
	cache := catalog.NewCache(seed.Deals())

	var store *storage.Client
	if cfg.LiveSyncEnabled() {
		store, err = storage.New(ctx, cfg.Firebase.ProjectID)
		if err != nil {
			slog.Warn("Failed to initialize listing store, serving seed data only", "error", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	assistantClient, err := assistant.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.ModelID)
	if err != nil {
		slog.Warn("Failed to initialize assistant, using local fallback", "error", err)
		assistantClient = nil
	}

	var identity *auth.Client
	if cfg.AuthEnabled() {
		identity = auth.NewClient(cfg.Firebase.WebAPIKey)
	}

	// A typed nil store must not reach the service as a non-nil interface.
	var dealStore admin.DealStore
	if store != nil {
		dealStore = store
	}
	adminService := admin.NewService(dealStore, enrich.New())

	hub := ws.NewHub()
	handler := server.NewHandler(cache, adminService, assistantClient, identity, hub,
		rate.Every(cfg.AssistantMinInterval), store != nil)
	router := server.NewRouter(handler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	if store != nil {
		g.Go(func() error {
			if deals, err := store.ListDeals(gctx); err != nil {
				slog.Warn("Initial listing load failed, keeping seed data", "error", err)
			} else {
				cache.Replace(deals)
				hub.BroadcastSnapshot(deals)
				slog.Info("Loaded listings from store", "count", len(deals))
			}

			// A broken subscription degrades to the last known collection
			// rather than taking the server down.
			if err := store.Watch(gctx, func(deals []models.Deal) {
				cache.Replace(deals)
				hub.BroadcastSnapshot(deals)
			}); err != nil {
				slog.Warn("Listing subscription ended, serving last known collection", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}
