package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	httpapi "rentaride-backend/internal/api/http"
	"rentaride-backend/internal/config"
	"rentaride-backend/internal/jobs"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/maps"
	"rentaride-backend/internal/presence"
	"rentaride-backend/internal/repository/postgres"
	"rentaride-backend/internal/scheduler"
	"rentaride-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentaRide Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := postgres.RunMigrations(cfg.GetDatabaseConnectionString(), cfg.Database.MigrationsPath); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Redis presence store
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Error("Failed to ping redis", "error", err)
		log.Fatalf("Failed to ping redis: %v", err)
	}
	defer redisClient.Close()
	heartbeats := presence.NewStore(redisClient, time.Duration(cfg.Redis.PresenceTTLSeconds)*time.Second)
	logger.Info("Redis connection established", "addr", cfg.Redis.Addr)

	// Initialize Route Provider
	routeSvc, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		logger.Error("Failed to initialize maps client", "error", err)
		log.Fatalf("Failed to initialize maps client: %v", err)
	}

	// Initialize Notifier
	notifier := service.NewSendGridNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)

	// Initialize Services
	registry := service.NewDriverRegistry(store.DriverRepository, heartbeats)
	handshakes := service.NewHandshakeManager(
		store.ContactRepository,
		notifier,
		time.Duration(cfg.Handshake.SimulatedConfirmDelaySeconds)*time.Second,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.VehicleRepository,
		store.LedgerRepository,
		cfg.Billing.OvertimeRatePerHourCents,
	)
	bookingSvc := service.NewBookingService(
		store.VehicleRepository,
		store.BookingRepository,
		registry,
		routeSvc,
		handshakes,
		rentalSvc,
	)

	// Re-arm overtime monitors for rentals that were running before restart
	if err := rentalSvc.ResumeMonitors(context.Background()); err != nil {
		logger.Error("Failed to resume overtime monitors", "error", err)
	}

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store.RentalRepository, store.VehicleRepository, notifier, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	router := httpapi.NewRouter(
		bookingSvc,
		rentalSvc,
		store.VehicleRepository,
		store.DriverRepository,
		store.LedgerRepository,
		heartbeats,
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	rentalSvc.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
