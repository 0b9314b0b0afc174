package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, c *domain.ContactRequest) error {
	query := `INSERT INTO contact_requests (id, quote_id, vehicle_id, owner_email, passenger_email, message, state, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, c.ID, c.QuoteID, c.VehicleID, c.OwnerEmail, c.PassengerEmail, c.Message, c.State, c.CreatedOn, c.UpdatedOn)
	return err
}

func (r *contactRepository) GetByQuote(ctx context.Context, quoteID string) (*domain.ContactRequest, error) {
	c := &domain.ContactRequest{}
	query := `SELECT id, quote_id, vehicle_id, owner_email, passenger_email, message, state, created_on, updated_on
	          FROM contact_requests WHERE quote_id = $1`
	err := r.db.QueryRowContext(ctx, query, quoteID).Scan(
		&c.ID, &c.QuoteID, &c.VehicleID, &c.OwnerEmail, &c.PassengerEmail, &c.Message, &c.State, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *contactRepository) UpdateState(ctx context.Context, id string, state domain.OwnerContactState) error {
	query := `UPDATE contact_requests SET state=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, state, time.Now(), id)
	return err
}
