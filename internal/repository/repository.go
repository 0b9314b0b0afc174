package repository

import (
	"context"
	"time"

	"rentaride-backend/internal/domain"
)

// VehicleRepository is the vehicle catalog. Tariff rows returned here are
// snapshots: absence of a per-unit rate comes back as 0 (unsupported).
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.VehicleTariff) error
	GetByID(ctx context.Context, id string) (*domain.VehicleTariff, error)
	List(ctx context.Context, category string, page, pageSize int32) ([]domain.VehicleTariff, int32, error)
	Update(ctx context.Context, v *domain.VehicleTariff) error
}

// DriverRepository is the driver registry backing store. The live online
// flag is layered on top from the presence store; GetByEmail returns the
// persisted record only.
type DriverRepository interface {
	Upsert(ctx context.Context, d *domain.DriverProfile) error
	GetByEmail(ctx context.Context, email string) (*domain.DriverProfile, error)
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id string) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	ListByPassenger(ctx context.Context, email string, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	// MarkOverdue flips ACTIVE rentals whose deadline passed and returns
	// the affected rentals. Used by the nightly sweep; the per-rental
	// monitor handles the live view.
	MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
}

// BookingRepository persists a confirmed booking: the rental row and its
// settlement ledger entries commit or fail together, so a failed checkout
// never leaves a rental without its income split.
type BookingRepository interface {
	CreateBooking(ctx context.Context, r *domain.Rental, entries []domain.LedgerEntry) error
}

// LedgerRepository is the durable payment ledger. The engine never retries
// ledger writes itself.
type LedgerRepository interface {
	CreateEntry(ctx context.Context, e *domain.LedgerEntry) error
	ListByRental(ctx context.Context, rentalID string) ([]domain.LedgerEntry, error)
	IncomeTotal(ctx context.Context, email string) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, c *domain.ContactRequest) error
	GetByQuote(ctx context.Context, quoteID string) (*domain.ContactRequest, error)
	UpdateState(ctx context.Context, id string, state domain.OwnerContactState) error
}
