package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	_ "github.com/lib/pq"

	"rentaride-backend/internal/config"
	"rentaride-backend/internal/jobs"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/repository/postgres"
	"rentaride-backend/internal/scheduler"
	"rentaride-backend/internal/service"
)

// Standalone scheduler binary. Runs the same jobs the server schedules,
// for deployments that keep cron work off the API nodes. With -once it
// runs every job a single time and exits.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("once", false, "Run all jobs once and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentaRide cron runner...")

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	store := postgres.NewStore(db)
	notifier := service.NewSendGridNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	jobRunner := jobs.NewJobRunner(store.RentalRepository, store.VehicleRepository, notifier, cfg)

	if *runOnce {
		logger.Info("Running all jobs once")
		jobRunner.RunAllJobs()
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down cron runner...")
	sched.Stop()
}
