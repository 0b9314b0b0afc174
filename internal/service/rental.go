package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/overtime"
	"rentaride-backend/internal/repository"
)

type rentalService struct {
	rentals  repository.RentalRepository
	vehicles repository.VehicleRepository
	ledger   repository.LedgerRepository

	overtimeRate int64

	mu       sync.Mutex
	monitors map[string]*overtime.Monitor
}

func NewRentalService(rentals repository.RentalRepository, vehicles repository.VehicleRepository, ledger repository.LedgerRepository, overtimeRateCents int64) RentalService {
	if overtimeRateCents <= 0 {
		overtimeRateCents = overtime.DefaultRatePerHourCents
	}
	return &rentalService{
		rentals:      rentals,
		vehicles:     vehicles,
		ledger:       ledger,
		overtimeRate: overtimeRateCents,
		monitors:     make(map[string]*overtime.Monitor),
	}
}

func (s *rentalService) Get(ctx context.Context, rentalID string) (*domain.Rental, error) {
	return s.rentals.GetByID(ctx, rentalID)
}

func (s *rentalService) List(ctx context.Context, passengerEmail, status string, page, pageSize int32) ([]domain.Rental, int32, error) {
	return s.rentals.ListByPassenger(ctx, passengerEmail, status, page, pageSize)
}

// Track starts an overtime monitor for a running rental. DELIVERING
// rentals are not tracked; their clock starts at handover. Tracking an
// already-tracked rental is a no-op.
func (s *rentalService) Track(rental *domain.Rental) {
	if !rental.Running() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.monitors[rental.ID]; exists {
		return
	}

	rentalID := rental.ID
	m := overtime.NewMonitor(rental, s.overtimeRate, func(snap overtime.Snapshot) {
		if snap.Overtime {
			s.onOverdue(rentalID, snap)
		}
	})
	s.monitors[rentalID] = m
	m.Start(context.Background())
}

// onOverdue persists the OVERDUE flip once and retires the monitor. Live
// overtime display afterwards is computed on demand, not ticked.
func (s *rentalService) onOverdue(rentalID string, snap overtime.Snapshot) {
	s.stopMonitor(rentalID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		logger.Error("Failed to load rental for overdue flip", "rental_id", rentalID, "error", err)
		return
	}
	if rental.Status != domain.RentalStatusActive {
		return
	}

	rental.Status = domain.RentalStatusOverdue
	if err := s.rentals.Update(ctx, rental); err != nil {
		logger.Error("Failed to mark rental overdue", "rental_id", rentalID, "error", err)
		return
	}
	logger.Info("Rental passed its deadline", "rental_id", rentalID, "overtime_elapsed", snap.Elapsed.String())
}

func (s *rentalService) Handover(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusDelivering {
		return nil, fmt.Errorf("rental %s is %s, expected %s", rentalID, rental.Status, domain.RentalStatusDelivering)
	}

	// The commitment window restarts at handover; delivery time is the
	// owner's cost, not the passenger's.
	now := time.Now()
	window := rental.EndDate.Sub(rental.StartDate)
	rental.StartDate = now
	rental.EndDate = now.Add(window)
	rental.Status = domain.RentalStatusActive

	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	s.Track(rental)
	logger.Info("Vehicle handed over", "rental_id", rentalID)
	return rental, nil
}

// Return closes the rental. The authoritative overtime charge is computed
// here from the persisted deadline, independent of whatever the monitor
// last displayed.
func (s *rentalService) Return(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Running() {
		return nil, fmt.Errorf("rental %s is %s, cannot process return", rentalID, rental.Status)
	}

	s.stopMonitor(rentalID)

	now := time.Now()
	var fee int64
	if now.After(rental.EndDate) {
		fee = overtime.Fee(now.Sub(rental.EndDate), s.overtimeRate)
	}

	rental.ReturnedOn = &now
	rental.OvertimeFeeCents = fee
	rental.Status = domain.RentalStatusCompleted
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}

	if fee > 0 {
		entry := &domain.LedgerEntry{
			RentalID:    rental.ID,
			Email:       rental.OwnerEmail,
			AmountCents: fee,
			Type:        domain.LedgerEntryOvertimeAdjustment,
			Description: fmt.Sprintf("Overtime charge for rental %s", rental.ID),
		}
		if err := s.ledger.CreateEntry(ctx, entry); err != nil {
			return nil, fmt.Errorf("failed to write overtime ledger entry: %w", err)
		}
	}

	logger.Info("Rental returned", "rental_id", rentalID, "overtime_fee_cents", fee)
	return rental, nil
}

func (s *rentalService) Cancel(ctx context.Context, rentalID string) (*domain.Rental, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusDelivering {
		return nil, fmt.Errorf("rental %s is %s, only deliveries can be cancelled", rentalID, rental.Status)
	}

	s.stopMonitor(rentalID)
	rental.Status = domain.RentalStatusCancelled
	if err := s.rentals.Update(ctx, rental); err != nil {
		return nil, err
	}
	logger.Info("Rental cancelled", "rental_id", rentalID)
	return rental, nil
}

func (s *rentalService) Overtime(ctx context.Context, rentalID string) (*overtime.Snapshot, error) {
	rental, err := s.rentals.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.Running() {
		return nil, fmt.Errorf("rental %s is %s, no live countdown", rentalID, rental.Status)
	}
	snap := overtime.At(rental.StartDate, rental.EndDate, time.Now(), s.overtimeRate)
	return &snap, nil
}

// Shutdown stops every live monitor. Called on server teardown.
func (s *rentalService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.monitors {
		m.Stop()
		delete(s.monitors, id)
	}
}

func (s *rentalService) stopMonitor(rentalID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.monitors[rentalID]; ok {
		m.Stop()
		delete(s.monitors, rentalID)
	}
}

// ResumeMonitors re-arms monitors for ACTIVE rentals after a restart.
// OVERDUE rentals need no monitor; their state is already persisted.
func (s *rentalService) ResumeMonitors(ctx context.Context) error {
	rentals, err := s.rentals.ListByStatus(ctx, domain.RentalStatusActive)
	if err != nil {
		return fmt.Errorf("failed to list active rentals: %w", err)
	}
	for i := range rentals {
		s.Track(&rentals[i])
	}
	return nil
}
