package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"rentaride-backend/internal/config"
	"rentaride-backend/internal/domain"
)

type mockRentalRepo struct {
	mock.Mock
}

func (m *mockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *mockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *mockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *mockRentalRepo) ListByPassenger(ctx context.Context, email string, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, email, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *mockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *mockRentalRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

type mockVehicleRepo struct {
	mock.Mock
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *domain.VehicleTariff) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *mockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.VehicleTariff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleTariff), args.Error(1)
}
func (m *mockVehicleRepo) List(ctx context.Context, category string, page, pageSize int32) ([]domain.VehicleTariff, int32, error) {
	args := m.Called(ctx, category, page, pageSize)
	return args.Get(0).([]domain.VehicleTariff), args.Get(1).(int32), args.Error(2)
}
func (m *mockVehicleRepo) Update(ctx context.Context, v *domain.VehicleTariff) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendOwnerContactRequest(ctx context.Context, ownerEmail, vehicleName, passengerEmail, message string) error {
	args := m.Called(ctx, ownerEmail, vehicleName, passengerEmail, message)
	return args.Error(0)
}
func (m *mockNotifier) SendOverdueReminder(ctx context.Context, passengerEmail, vehicleName string, feeCents int64) error {
	args := m.Called(ctx, passengerEmail, vehicleName, feeCents)
	return args.Error(0)
}

func jobConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.OvertimeRatePerHourCents = 50000
	return cfg
}

func TestMarkOverdueRentals(t *testing.T) {
	rentals := new(mockRentalRepo)
	jr := NewJobRunner(rentals, new(mockVehicleRepo), new(mockNotifier), jobConfig())

	rentals.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Rental{{ID: "r-1"}, {ID: "r-2"}}, nil)

	jr.MarkOverdueRentals()
	rentals.AssertExpectations(t)
}

func TestMarkOverdueRentals_RepoFailure(t *testing.T) {
	rentals := new(mockRentalRepo)
	jr := NewJobRunner(rentals, new(mockVehicleRepo), new(mockNotifier), jobConfig())

	rentals.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]domain.Rental{}, errors.New("db down"))

	// Must not panic; failures are logged and the job completes.
	jr.MarkOverdueRentals()
}

func TestSendOverdueReminders(t *testing.T) {
	rentals := new(mockRentalRepo)
	vehicles := new(mockVehicleRepo)
	notifier := new(mockNotifier)
	jr := NewJobRunner(rentals, vehicles, notifier, jobConfig())

	// 90 minutes overdue bills as 2 started hours.
	overdue := domain.Rental{
		ID:             "r-1",
		VehicleID:      "veh-1",
		PassengerEmail: "rider@example.com",
		EndDate:        time.Now().Add(-90 * time.Minute),
		Status:         domain.RentalStatusOverdue,
	}
	rentals.On("ListByStatus", mock.Anything, domain.RentalStatusOverdue).
		Return([]domain.Rental{overdue}, nil)
	vehicles.On("GetByID", mock.Anything, "veh-1").
		Return(&domain.VehicleTariff{ID: "veh-1", Name: "Avanza"}, nil)
	notifier.On("SendOverdueReminder", mock.Anything, "rider@example.com", "Avanza", int64(100000)).
		Return(nil)

	jr.SendOverdueReminders()
	notifier.AssertExpectations(t)
}

func TestSendOverdueReminders_ContinuesPastFailures(t *testing.T) {
	rentals := new(mockRentalRepo)
	vehicles := new(mockVehicleRepo)
	notifier := new(mockNotifier)
	jr := NewJobRunner(rentals, vehicles, notifier, jobConfig())

	overdue := []domain.Rental{
		{ID: "r-1", VehicleID: "veh-1", PassengerEmail: "a@example.com", EndDate: time.Now().Add(-time.Hour)},
		{ID: "r-2", VehicleID: "veh-1", PassengerEmail: "b@example.com", EndDate: time.Now().Add(-time.Hour)},
	}
	rentals.On("ListByStatus", mock.Anything, domain.RentalStatusOverdue).Return(overdue, nil)
	vehicles.On("GetByID", mock.Anything, "veh-1").Return(&domain.VehicleTariff{ID: "veh-1", Name: "Avanza"}, nil)
	notifier.On("SendOverdueReminder", mock.Anything, "a@example.com", mock.Anything, mock.Anything).
		Return(errors.New("bounce"))
	notifier.On("SendOverdueReminder", mock.Anything, "b@example.com", mock.Anything, mock.Anything).
		Return(nil)

	jr.SendOverdueReminders()
	notifier.AssertNumberOfCalls(t, "SendOverdueReminder", 2)
}
