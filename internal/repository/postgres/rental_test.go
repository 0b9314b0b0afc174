package postgres

import (
	"context"
	"testing"
	"time"

	"rentaride-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var rentalRows = []string{"id", "vehicle_id", "passenger_email", "owner_email", "driver_email", "start_date", "end_date", "returned_on", "status", "duration_unit", "duration_count", "base_cents", "driver_surcharge_cents", "delivery_fee_cents", "total_cents", "overtime_fee_cents", "created_on", "updated_on"}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{
			ID:             "rent-1",
			VehicleID:      "veh-1",
			PassengerEmail: "p@riders.test",
			OwnerEmail:     "o@owners.test",
			StartDate:      time.Now(),
			EndDate:        time.Now().Add(48 * time.Hour),
			Status:         domain.RentalStatusDelivering,
			Unit:           domain.DurationUnitDay,
			DurationCount:  2,
			BaseCents:      600000,
			TotalCents:     600000,
		}

		mock.ExpectExec("INSERT INTO rentals").
			WithArgs(rental.ID, rental.VehicleID, rental.PassengerEmail, rental.OwnerEmail, rental.DriverEmail,
				rental.StartDate, rental.EndDate, rental.ReturnedOn, rental.Status,
				rental.Unit, rental.DurationCount,
				rental.BaseCents, rental.DriverSurchargeCents, rental.DeliveryFeeCents, rental.TotalCents, rental.OvertimeFeeCents,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalRows).
			AddRow("rent-1", "veh-1", "p@riders.test", "o@owners.test", "", time.Now(), time.Now().Add(24*time.Hour), nil, "ACTIVE", "DAY", 1, 300000, 0, 0, 300000, 0, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("rent-1").
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, "rent-1")
		assert.NoError(t, err)
		assert.NotNil(t, rental)
		assert.Equal(t, "rent-1", rental.ID)
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
	})

	t.Run("Missing rental maps to domain error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs("rent-404").
			WillReturnRows(sqlmock.NewRows(rentalRows))

		_, err := repo.GetByID(ctx, "rent-404")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestRentalRepository_MarkOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()
	asOf := time.Now()

	rows := sqlmock.NewRows(rentalRows).
		AddRow("rent-1", "veh-1", "p@riders.test", "o@owners.test", "", asOf.Add(-48*time.Hour), asOf.Add(-time.Hour), nil, "OVERDUE", "DAY", 2, 600000, 0, 0, 600000, 0, asOf, asOf)

	mock.ExpectQuery("UPDATE rentals").
		WithArgs(asOf).
		WillReturnRows(rows)

	overdue, err := repo.MarkOverdue(ctx, asOf)
	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	assert.Equal(t, domain.RentalStatusOverdue, overdue[0].Status)
}
