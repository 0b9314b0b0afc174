package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (rental_id, email, amount_cents, type, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	e.CreatedOn = time.Now()
	return r.db.QueryRowContext(ctx, query, e.RentalID, e.Email, e.AmountCents, e.Type, e.Description, e.CreatedOn).Scan(&e.ID)
}

func (r *ledgerRepository) ListByRental(ctx context.Context, rentalID string) ([]domain.LedgerEntry, error) {
	query := `SELECT id, rental_id, email, amount_cents, type, description, created_on
	          FROM ledger_entries WHERE rental_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.RentalID, &e.Email, &e.AmountCents, &e.Type, &e.Description, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepository) IncomeTotal(ctx context.Context, email string) (int64, error) {
	var total sql.NullInt64
	query := `SELECT SUM(amount_cents) FROM ledger_entries WHERE email = $1`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&total); err != nil {
		return 0, err
	}
	return total.Int64, nil
}
