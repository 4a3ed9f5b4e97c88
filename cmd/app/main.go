package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emberwake/emberwake/internal/catalog"
	"github.com/emberwake/emberwake/internal/character"
	"github.com/emberwake/emberwake/internal/config"
	"github.com/emberwake/emberwake/internal/database"
	"github.com/emberwake/emberwake/internal/database/postgres"
	"github.com/emberwake/emberwake/internal/event"
	"github.com/emberwake/emberwake/internal/item"
	"github.com/emberwake/emberwake/internal/logger"
	"github.com/emberwake/emberwake/internal/naming"
	"github.com/emberwake/emberwake/internal/repository"
	"github.com/emberwake/emberwake/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Item catalog
	catalogConfig, err := catalog.NewLoader().Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load item catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}
	store := catalog.NewStore(catalogConfig)
	cached := catalog.NewCachedCatalog(store, 512, 10*time.Minute)
	logger.Info("Item catalog loaded", "items", store.Len(), "path", cfg.CatalogPath)

	enchants, err := catalog.NewEnchantmentRegistry(cfg.EnchantPath)
	if err != nil {
		logger.Error("Failed to load enchantment registry", "error", err, "path", cfg.EnchantPath)
		os.Exit(1)
	}

	// Naming resolver, seeded with catalog display names
	resolver, err := naming.NewResolver(cfg.AliasesPath)
	if err != nil {
		logger.Error("Failed to load naming config", "error", err, "path", cfg.AliasesPath)
		os.Exit(1)
	}
	for _, def := range catalogConfig.Items {
		resolver.RegisterItem(def.ID, def.Name)
	}

	// Persistence
	var pool *pgxpool.Pool
	var repo repository.CharacterState
	if cfg.DBEnabled {
		pool, err = database.NewPool(ctx, cfg.GetDBConnString(), 10, time.Minute, 30*time.Minute)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = postgres.NewCharacterStateRepository(pool)
	} else {
		logger.Warn("Running without persistence, character state is in-memory only")
	}

	bus := event.NewMemoryBus()
	factory := item.NewFactory(cached, bus)
	characters := character.NewManager(factory, cached, bus, repo)

	var dbPool database.Pool
	if pool != nil {
		dbPool = pool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, characters, cached, enchants, resolver)

	// Buff tick and periodic world save
	go runTicker(ctx, time.Duration(cfg.BuffTickSec)*time.Second, func() {
		characters.Update(float64(cfg.BuffTickSec))
	})
	if repo != nil {
		go runTicker(ctx, time.Duration(cfg.SaveIntervalSec)*time.Second, func() {
			if err := characters.SaveAll(ctx); err != nil {
				logger.Error("World save failed", "error", err)
			}
		})
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	if repo != nil {
		if err := characters.SaveAll(shutdownCtx); err != nil {
			logger.Error("Final world save failed", "error", err)
		}
	}
	logger.Info("Server stopped")
}

// runTicker invokes fn on every tick until the context ends
func runTicker(ctx context.Context, interval time.Duration, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
