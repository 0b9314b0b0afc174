package postgres

import (
	"context"
	"testing"

	"rentaride-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRepository_CreateEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLedgerRepository(db)
	ctx := context.Background()

	entry := &domain.LedgerEntry{
		RentalID:    "rent-1",
		Email:       "o@owners.test",
		AmountCents: 603000,
		Type:        domain.LedgerEntryOwnerIncome,
		Description: "Owner income for rental rent-1",
	}

	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(entry.RentalID, entry.Email, entry.AmountCents, entry.Type, entry.Description, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err = repo.CreateEntry(ctx, entry)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), entry.ID)
}

func TestLedgerRepository_IncomeTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("Sums entries", func(t *testing.T) {
		mock.ExpectQuery("SELECT SUM\\(amount_cents\\) FROM ledger_entries").
			WithArgs("d@drivers.test").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300000))

		total, err := repo.IncomeTotal(ctx, "d@drivers.test")
		assert.NoError(t, err)
		assert.Equal(t, int64(300000), total)
	})

	t.Run("No entries yields zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT SUM\\(amount_cents\\) FROM ledger_entries").
			WithArgs("nobody@drivers.test").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		total, err := repo.IncomeTotal(ctx, "nobody@drivers.test")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
