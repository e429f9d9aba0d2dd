package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/finplanner/iht-engine/internal/api"
	"github.com/finplanner/iht-engine/internal/audit"
	"github.com/finplanner/iht-engine/internal/config"
	"github.com/finplanner/iht-engine/internal/database"
	"github.com/finplanner/iht-engine/internal/rates"
	"github.com/finplanner/iht-engine/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply migrations, seeding the rates table on first run
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Load the rates snapshot
	ratesService, err := rates.NewService(rates.NewRepository(db))
	if err != nil {
		log.Fatalf("Failed to load tax year rates: %v", err)
	}

	// The audit trail is optional and only enabled when a key is configured
	var auditStore *audit.Store
	if cfg.Audit.EncryptionKey != "" {
		auditStore, err = audit.NewStore(db, cfg.Audit.EncryptionKey)
		if err != nil {
			log.Fatalf("Failed to initialise audit store: %v", err)
		}
	} else {
		log.Println("AUDIT_ENCRYPTION_KEY not set, audit trail disabled")
	}

	systemService := service.NewSystemService(db)
	calculationService := service.NewCalculationService(ratesService, auditStore)

	// Refresh the rates snapshot on a schedule so rate updates land without
	// a restart
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Rates.ReloadSchedule, func() {
		if err := ratesService.Reload(); err != nil {
			log.Printf("Scheduled rates reload failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid rates reload schedule %q: %v", cfg.Rates.ReloadSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, calculationService, ratesService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
