package postgres

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.DriverRepository
	repository.RentalRepository
	repository.BookingRepository
	repository.LedgerRepository
	repository.ContactRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                db,
		VehicleRepository: NewVehicleRepository(db),
		DriverRepository:  NewDriverRepository(db),
		RentalRepository:  NewRentalRepository(db),
		BookingRepository: NewBookingRepository(db),
		LedgerRepository:  NewLedgerRepository(db),
		ContactRepository: NewContactRepository(db),
	}
}

// RunMigrations applies pending schema migrations from the given directory.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied", "path", migrationsPath)
	return nil
}
