package jobs

import (
	"rentaride-backend/internal/config"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/repository"
	"rentaride-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals  repository.RentalRepository
	vehicles repository.VehicleRepository
	notifier service.Notifier
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals repository.RentalRepository, vehicles repository.VehicleRepository, notifier service.Notifier, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals:  rentals,
		vehicles: vehicles,
		notifier: notifier,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every scheduled job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.MarkOverdueRentals()
	jr.SendOverdueReminders()
}
