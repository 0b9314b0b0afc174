package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateBooking inserts the rental and its settlement ledger entries in a
// single transaction. Either everything lands or nothing does.
func (r *bookingRepository) CreateBooking(ctx context.Context, rt *domain.Rental, entries []domain.LedgerEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now

	rentalQuery := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = tx.ExecContext(ctx, rentalQuery,
		rt.ID, rt.VehicleID, rt.PassengerEmail, rt.OwnerEmail, rt.DriverEmail,
		rt.StartDate, rt.EndDate, rt.ReturnedOn, rt.Status,
		rt.Unit, rt.DurationCount,
		rt.BaseCents, rt.DriverSurchargeCents, rt.DeliveryFeeCents, rt.TotalCents, rt.OvertimeFeeCents,
		rt.CreatedOn, rt.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to insert rental: %w", err)
	}

	entryQuery := `INSERT INTO ledger_entries (rental_id, email, amount_cents, type, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range entries {
		e := &entries[i]
		e.CreatedOn = now
		if err := tx.QueryRowContext(ctx, entryQuery,
			e.RentalID, e.Email, e.AmountCents, e.Type, e.Description, e.CreatedOn).Scan(&e.ID); err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}
	return nil
}
