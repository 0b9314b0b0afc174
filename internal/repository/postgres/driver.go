package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Upsert(ctx context.Context, d *domain.DriverProfile) error {
	query := `INSERT INTO drivers (email, name, licenses)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, licenses = EXCLUDED.licenses`
	_, err := r.db.ExecContext(ctx, query, d.Email, d.Name, domain.JoinLicenseSet(d.Licenses))
	return err
}

func (r *driverRepository) GetByEmail(ctx context.Context, email string) (*domain.DriverProfile, error) {
	d := &domain.DriverProfile{}
	var licenses string
	query := `SELECT email, name, licenses FROM drivers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&d.Email, &d.Name, &licenses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	// Stored as a comma-joined token list; unknown tokens drop out here.
	d.Licenses = domain.ParseLicenseSet(licenses)
	return d, nil
}
