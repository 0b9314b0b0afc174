package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, owner_email, name, category, location, price_per_hour_cents, price_per_day_cents, price_per_week_cents, driver_price_per_hour_cents, driver_price_per_day_cents, driver_price_per_week_cents, driver_email, assignment_mode, driver_availability`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.VehicleTariff) error {
	query := `INSERT INTO vehicles (` + vehicleColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.OwnerEmail, v.Name, v.Category, v.Location,
		v.PricePerHourCents, v.PricePerDayCents, v.PricePerWeekCents,
		v.DriverPricePerHourCents, v.DriverPricePerDayCents, v.DriverPricePerWeekCents,
		v.DriverEmail, v.AssignmentMode, v.DriverAvailability)
	return err
}

func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*domain.VehicleTariff, error) {
	v := &domain.VehicleTariff{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.OwnerEmail, &v.Name, &v.Category, &v.Location,
		&v.PricePerHourCents, &v.PricePerDayCents, &v.PricePerWeekCents,
		&v.DriverPricePerHourCents, &v.DriverPricePerDayCents, &v.DriverPricePerWeekCents,
		&v.DriverEmail, &v.AssignmentMode, &v.DriverAvailability)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) List(ctx context.Context, category string, page, pageSize int32) ([]domain.VehicleTariff, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` FROM vehicles`
	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" WHERE category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.VehicleTariff
	for rows.Next() {
		var v domain.VehicleTariff
		if err := rows.Scan(
			&v.ID, &v.OwnerEmail, &v.Name, &v.Category, &v.Location,
			&v.PricePerHourCents, &v.PricePerDayCents, &v.PricePerWeekCents,
			&v.DriverPricePerHourCents, &v.DriverPricePerDayCents, &v.DriverPricePerWeekCents,
			&v.DriverEmail, &v.AssignmentMode, &v.DriverAvailability); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.VehicleTariff) error {
	query := `UPDATE vehicles SET driver_email=$1, assignment_mode=$2, driver_availability=$3,
	          price_per_hour_cents=$4, price_per_day_cents=$5, price_per_week_cents=$6,
	          driver_price_per_hour_cents=$7, driver_price_per_day_cents=$8, driver_price_per_week_cents=$9
	          WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query,
		v.DriverEmail, v.AssignmentMode, v.DriverAvailability,
		v.PricePerHourCents, v.PricePerDayCents, v.PricePerWeekCents,
		v.DriverPricePerHourCents, v.DriverPricePerDayCents, v.DriverPricePerWeekCents,
		v.ID)
	return err
}
