package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, vehicle_id, passenger_email, owner_email, driver_email, start_date, end_date, returned_on, status, duration_unit, duration_count, base_cents, driver_surcharge_cents, delivery_fee_cents, total_cents, overtime_fee_cents, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (` + rentalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query,
		rt.ID, rt.VehicleID, rt.PassengerEmail, rt.OwnerEmail, rt.DriverEmail,
		rt.StartDate, rt.EndDate, rt.ReturnedOn, rt.Status,
		rt.Unit, rt.DurationCount,
		rt.BaseCents, rt.DriverSurchargeCents, rt.DeliveryFeeCents, rt.TotalCents, rt.OvertimeFeeCents,
		rt.CreatedOn, rt.UpdatedOn)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := scanRental(r.db.QueryRowContext(ctx, query, id), rt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, returned_on=$2, overtime_fee_cents=$3, end_date=$4, updated_on=$5 WHERE id=$6`
	rt.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, rt.Status, rt.ReturnedOn, rt.OvertimeFeeCents, rt.EndDate, rt.UpdatedOn, rt.ID)
	return err
}

func (r *rentalRepository) ListByPassenger(ctx context.Context, email string, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE passenger_email = $1`
	args := []interface{}{email}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := collectRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY end_date`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `UPDATE rentals
	          SET status = 'OVERDUE', updated_on = NOW()
	          WHERE status = 'ACTIVE' AND end_date < $1
	          RETURNING ` + rentalColumns
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRental(row rowScanner, rt *domain.Rental) error {
	return row.Scan(
		&rt.ID, &rt.VehicleID, &rt.PassengerEmail, &rt.OwnerEmail, &rt.DriverEmail,
		&rt.StartDate, &rt.EndDate, &rt.ReturnedOn, &rt.Status,
		&rt.Unit, &rt.DurationCount,
		&rt.BaseCents, &rt.DriverSurchargeCents, &rt.DeliveryFeeCents, &rt.TotalCents, &rt.OvertimeFeeCents,
		&rt.CreatedOn, &rt.UpdatedOn)
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
