package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trading-journal-go/internal/api"
	"trading-journal-go/internal/config"
	"trading-journal-go/internal/database"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/logger"
	"trading-journal-go/internal/metrics"
	"trading-journal-go/internal/repository/gormstore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load application configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Configuration loaded")

	loc, err := cfg.Stats.Location()
	if err != nil {
		log.Fatal("Invalid stats configuration", zap.Error(err))
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.", zap.String("driver", cfg.Database.Driver))

	store := gormstore.New(db)
	m := metrics.New()

	syncer := journal.NewSynchronizer(store, log, m)
	methods := journal.NewMethodService(store, log)
	trades := journal.NewTradeService(store, syncer, loc, log)
	stats := journal.NewStatsService(store, loc, cfg.Stats.RecentLimit, m, log)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	handler := api.NewAPIHandler(log, methods, trades, stats, store)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(handler, m, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Setup context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Reconcile.Enabled {
		reconciler, err := journal.NewReconciler(cfg.Reconcile.Schedule, syncer, log)
		if err != nil {
			log.Fatal("Invalid reconcile schedule", zap.Error(err))
		}
		go reconciler.Run(ctx)
	}

	go func() {
		log.Info("Starting web server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Web server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info("Server has been shut down.")
}
