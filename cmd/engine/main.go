package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noteminder/noteminder/internal/config"
	"github.com/noteminder/noteminder/internal/database"
	"github.com/noteminder/noteminder/internal/delivery"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/domain/service"
	"github.com/noteminder/noteminder/internal/handlers"
	"github.com/noteminder/noteminder/internal/logger"
	"github.com/noteminder/noteminder/migrator/sqlite"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	logger.Log.Info("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		logger.Log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Log.Info("Migrations completed successfully")

	dm := database.NewInstance(db)

	var feedRepo contract.FeedRepo
	if !cfg.PrivacyMode {
		feedRepo = dm.Feed()
	}

	registry, err := delivery.NewRegistry(cfg, feedRepo)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize delivery channels: %v", err)
	}

	services := service.New(dm, registry.Deliverers, service.Options{
		DispatchInterval:   cfg.DispatchInterval,
		RebuildQuietPeriod: cfg.RebuildQuietPeriod,
		PrivacyMode:        cfg.PrivacyMode,
	})

	ctx := context.Background()

	// Seed from the previous run so notifications survive a restart until
	// the host pushes a fresh index snapshot.
	services.Engine.LoadPrior(ctx)

	services.Coordinator.Start()
	defer services.Coordinator.Stop()

	services.Engine.Start()
	defer services.Engine.Stop()

	// Nightly full regeneration, independent of index change events.
	resync := cron.New()
	_, err = resync.AddFunc(cfg.ResyncCronSpec, func() {
		if _, err := services.Engine.Rebuild(context.Background()); err != nil {
			logger.Log.Errorf("Scheduled resync failed: %v", err)
		}
	})
	if err != nil {
		logger.Log.Fatalf("Invalid resync cron spec %q: %v", cfg.ResyncCronSpec, err)
	}
	resync.Start()
	defer resync.Stop()

	handler := handlers.New(services, registry.InApp, cfg.UpcomingDefaultLimit)
	mux := http.NewServeMux()
	handler.Register(mux)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: mux,
	}

	go func() {
		logger.Log.Infof("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server shutdown failed: %v", err)
	}
}
