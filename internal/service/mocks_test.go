package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentaride-backend/internal/domain"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.VehicleTariff) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id string) (*domain.VehicleTariff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleTariff), args.Error(1)
}
func (m *MockVehicleRepo) List(ctx context.Context, category string, page, pageSize int32) ([]domain.VehicleTariff, int32, error) {
	args := m.Called(ctx, category, page, pageSize)
	return args.Get(0).([]domain.VehicleTariff), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.VehicleTariff) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

// MockDriverRepo
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) Upsert(ctx context.Context, d *domain.DriverProfile) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDriverRepo) GetByEmail(ctx context.Context, email string) (*domain.DriverProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverProfile), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByPassenger(ctx context.Context, email string, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, email, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateBooking(ctx context.Context, r *domain.Rental, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, r, entries)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) CreateEntry(ctx context.Context, e *domain.LedgerEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListByRental(ctx context.Context, rentalID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerRepo) IncomeTotal(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, c *domain.ContactRequest) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContactRepo) GetByQuote(ctx context.Context, quoteID string) (*domain.ContactRequest, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactRequest), args.Error(1)
}
func (m *MockContactRepo) UpdateState(ctx context.Context, id string, state domain.OwnerContactState) error {
	args := m.Called(ctx, id, state)
	return args.Error(0)
}

// MockRouteProvider
type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) DistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(float64), args.Error(1)
}

// MockPresenceStore
type MockPresenceStore struct {
	mock.Mock
}

func (m *MockPresenceStore) IsOnline(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockDriverRegistry
type MockDriverRegistry struct {
	mock.Mock
}

func (m *MockDriverRegistry) GetProfile(ctx context.Context, email string) (*domain.DriverProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DriverProfile), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOwnerContactRequest(ctx context.Context, ownerEmail, vehicleName, passengerEmail, message string) error {
	args := m.Called(ctx, ownerEmail, vehicleName, passengerEmail, message)
	return args.Error(0)
}
func (m *MockNotifier) SendOverdueReminder(ctx context.Context, passengerEmail, vehicleName string, feeCents int64) error {
	args := m.Called(ctx, passengerEmail, vehicleName, feeCents)
	return args.Error(0)
}

// noopTracker satisfies the booking service's tracker dependency in tests
// that never reach checkout monitoring.
type noopTracker struct{}

func (noopTracker) Track(*domain.Rental) {}
