package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/eligibility"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/pricing"
	"rentaride-backend/internal/repository"
	"rentaride-backend/internal/settlement"
)

// quoteState is the live server-side state of one booking draft. The quote
// itself is an immutable value: applyPatch copies it, and async results
// only land if their generation still matches (last-write-wins by request
// generation, not completion order).
type quoteState struct {
	quote       domain.RentalQuote
	tariff      *domain.VehicleTariff // snapshot, immutable per quote
	breakdown   domain.PriceBreakdown
	eligibility domain.EligibilityResult

	routeGen    uint64
	checkGen    uint64
	cancelCheck context.CancelFunc
}

type bookingService struct {
	vehicles   repository.VehicleRepository
	bookings   repository.BookingRepository
	registry   DriverRegistry
	routes     RouteProvider
	handshakes *HandshakeManager
	tracker    interface{ Track(*domain.Rental) }

	mu     sync.Mutex
	quotes map[string]*quoteState
}

func NewBookingService(
	vehicles repository.VehicleRepository,
	bookings repository.BookingRepository,
	registry DriverRegistry,
	routes RouteProvider,
	handshakes *HandshakeManager,
	tracker interface{ Track(*domain.Rental) },
) BookingService {
	return &bookingService{
		vehicles:   vehicles,
		bookings:   bookings,
		registry:   registry,
		routes:     routes,
		handshakes: handshakes,
		tracker:    tracker,
		quotes:     make(map[string]*quoteState),
	}
}

func (s *bookingService) CreateQuote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	tariff, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	quote := domain.RentalQuote{
		ID:              uuid.NewString(),
		VehicleID:       req.VehicleID,
		Unit:            req.Unit,
		DurationCount:   req.DurationCount,
		WithDriver:      req.WithDriver,
		DriverEmail:     req.DriverEmail,
		DeliveryAddress: req.DeliveryAddress,
		PassengerEmail:  req.PassengerEmail,
	}

	breakdown, err := pricing.ComputePrice(tariff, quote.Unit, quote.DurationCount, quote.WithDriver, nil)
	if err != nil {
		return nil, err
	}

	st := &quoteState{
		quote:       quote,
		tariff:      tariff,
		breakdown:   breakdown,
		eligibility: domain.EligibilityResult{State: domain.CheckNotStarted},
	}

	s.mu.Lock()
	s.quotes[quote.ID] = st
	s.resolveRoute(st)
	s.revalidate(st)
	s.mu.Unlock()

	return s.GetQuote(ctx, quote.ID)
}

func (s *bookingService) UpdateQuote(ctx context.Context, quoteID string, patch QuotePatch) (*QuoteView, error) {
	s.mu.Lock()
	st, ok := s.quotes[quoteID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrQuoteNotFound
	}

	// Work on a copy; the old quote value is never mutated in place.
	next := st.quote
	addressChanged := false
	driverInputChanged := false

	if patch.Unit != nil {
		next.Unit = *patch.Unit
	}
	if patch.DurationCount != nil {
		next.DurationCount = *patch.DurationCount
	}
	if patch.WithDriver != nil && *patch.WithDriver != next.WithDriver {
		next.WithDriver = *patch.WithDriver
		driverInputChanged = true
	}
	if patch.DriverEmail != nil && *patch.DriverEmail != next.DriverEmail {
		next.DriverEmail = *patch.DriverEmail
		driverInputChanged = true
	}
	if patch.DeliveryAddress != nil && *patch.DeliveryAddress != next.DeliveryAddress {
		next.DeliveryAddress = *patch.DeliveryAddress
		next.DistanceKm = nil // stale; re-resolve below
		addressChanged = true
	}

	breakdown, err := pricing.ComputePrice(st.tariff, next.Unit, next.DurationCount, next.WithDriver, next.DistanceKm)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	st.quote = next
	st.breakdown = breakdown
	if addressChanged {
		s.resolveRoute(st)
	}
	if driverInputChanged {
		s.revalidate(st)
	}
	s.mu.Unlock()

	return s.GetQuote(ctx, quoteID)
}

// resolveRoute issues an async distance lookup for the quote's current
// delivery address. Caller holds s.mu. The generation bumps on EVERY call,
// including the no-address case, so an in-flight lookup for a replaced or
// cleared address is dropped on arrival.
func (s *bookingService) resolveRoute(st *quoteState) {
	st.routeGen++
	if st.quote.DeliveryAddress == "" {
		return
	}

	gen := st.routeGen
	quoteID := st.quote.ID
	origin := st.tariff.Location
	dest := st.quote.DeliveryAddress

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		km, err := s.routes.DistanceKm(ctx, origin, dest)
		if err != nil {
			// Distance stays unknown; pricing remains provisional.
			logger.Warn("Route lookup failed, keeping provisional delivery fee", "quote_id", quoteID, "error", err)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		st, ok := s.quotes[quoteID]
		if !ok || st.routeGen != gen {
			return // superseded or discarded
		}
		st.quote.DistanceKm = &km
		bd, err := pricing.ComputePrice(st.tariff, st.quote.Unit, st.quote.DurationCount, st.quote.WithDriver, &km)
		if err == nil {
			st.breakdown = bd
		}
	}()
}

// revalidate restarts driver eligibility for the quote. Caller holds s.mu.
// Any in-flight check is cancelled first: at most one outstanding
// validation per quote. The generation bumps on EVERY call so a check that
// already passed its lookup when the trigger fired still loses to the
// synchronous result.
func (s *bookingService) revalidate(st *quoteState) {
	st.checkGen++
	if st.cancelCheck != nil {
		st.cancelCheck()
		st.cancelCheck = nil
	}

	if !st.quote.WithDriver {
		st.eligibility = domain.EligibilityResult{State: domain.CheckNotStarted}
		return
	}

	email, ok := eligibility.ResolveDriverEmail(st.tariff, st.quote.DriverEmail)
	if !ok {
		st.eligibility = eligibility.Unselected()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	st.cancelCheck = cancel
	gen := st.checkGen
	quoteID := st.quote.ID
	category := st.tariff.Category
	st.eligibility = domain.EligibilityResult{State: domain.CheckRunning, DriverEmail: email}

	go func() {
		defer cancel()

		profile, err := s.registry.GetProfile(ctx, email)
		var res domain.EligibilityResult
		switch {
		case errors.Is(err, domain.ErrDriverNotFound):
			res = eligibility.Evaluate(nil, category, email)
		case err != nil:
			if ctx.Err() != nil {
				return // cancelled by a newer trigger
			}
			res = domain.EligibilityInvalid(domain.ReasonDriverNotFound,
				fmt.Sprintf("driver lookup failed: %v", err), email)
		default:
			res = eligibility.Evaluate(profile, category, email)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		st, ok := s.quotes[quoteID]
		if !ok || st.checkGen != gen {
			return
		}
		st.eligibility = res
	}()
}

func (s *bookingService) GetQuote(ctx context.Context, quoteID string) (*QuoteView, error) {
	s.mu.Lock()
	st, ok := s.quotes[quoteID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrQuoteNotFound
	}
	view := QuoteView{
		Quote:       st.quote,
		Breakdown:   st.breakdown,
		Eligibility: st.eligibility,
	}
	needsHandshake := st.tariff.DriverAvailability == domain.DriverNotAvailable
	s.mu.Unlock()

	view.ContactState = domain.ContactNone
	if needsHandshake {
		state, err := s.handshakes.State(ctx, quoteID)
		if err != nil {
			return nil, err
		}
		view.ContactState = state
	}
	view.CheckoutAction = checkoutAction(needsHandshake, view.ContactState)

	return &view, nil
}

func checkoutAction(needsHandshake bool, state domain.OwnerContactState) string {
	if !needsHandshake {
		return ActionCheckout
	}
	switch state {
	case domain.ContactConfirmed:
		return ActionCheckout
	case domain.ContactRequested, domain.ContactContacted:
		return ActionAwaitingConfirmation
	default:
		return ActionContactOwner
	}
}

func (s *bookingService) DiscardQuote(ctx context.Context, quoteID string) error {
	s.mu.Lock()
	st, ok := s.quotes[quoteID]
	if ok {
		if st.cancelCheck != nil {
			st.cancelCheck()
		}
		delete(s.quotes, quoteID)
	}
	s.mu.Unlock()
	if !ok {
		return domain.ErrQuoteNotFound
	}
	s.handshakes.Abandon(ctx, quoteID)
	return nil
}

func (s *bookingService) RequestOwnerContact(ctx context.Context, quoteID, message string) (*domain.ContactRequest, error) {
	s.mu.Lock()
	st, ok := s.quotes[quoteID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrQuoteNotFound
	}
	quote := st.quote
	tariff := st.tariff
	s.mu.Unlock()

	if tariff.DriverAvailability != domain.DriverNotAvailable {
		return nil, fmt.Errorf("owner contact not applicable: vehicle %s has driver availability %s", tariff.ID, tariff.DriverAvailability)
	}
	return s.handshakes.Request(ctx, &quote, tariff, message)
}

func (s *bookingService) ConfirmOwnerContact(ctx context.Context, quoteID string) error {
	return s.handshakes.Confirm(ctx, quoteID)
}

func (s *bookingService) AbandonOwnerContact(ctx context.Context, quoteID string) error {
	return s.handshakes.Abandon(ctx, quoteID)
}

func (s *bookingService) Checkout(ctx context.Context, quoteID string, ptype domain.PaymentType, method domain.PaymentMethod) (*domain.BookingConfirmation, error) {
	s.mu.Lock()
	st, ok := s.quotes[quoteID]
	if !ok {
		s.mu.Unlock()
		return nil, domain.ErrQuoteNotFound
	}
	quote := st.quote
	tariff := st.tariff
	breakdown := st.breakdown
	elig := st.eligibility
	s.mu.Unlock()

	if quote.DurationCount < 1 {
		return nil, domain.ErrInvalidDuration
	}
	if quote.WithDriver && !elig.Valid() {
		return nil, fmt.Errorf("driver not eligible: %s (%s)", elig.Message, elig.Reason)
	}

	if tariff.DriverAvailability == domain.DriverNotAvailable {
		state, err := s.handshakes.State(ctx, quoteID)
		if err != nil {
			return nil, err
		}
		if state != domain.ContactConfirmed || quote.DeliveryAddress == "" {
			return nil, domain.ErrOwnerContactNotConfirmed
		}
	}

	if breakdown.Provisional {
		// Preserved behavior: checkout proceeds with a zero delivery fee
		// when routing never resolved. Known business risk; understates
		// the fee rather than blocking the booking.
		logger.Warn("Checkout with provisional breakdown, delivery fee unresolved", "quote_id", quoteID)
	}

	hasSurcharge := breakdown.DriverSurchargeCents > 0
	driverPortion := int64(0)
	if hasSurcharge {
		// The driver's cut is the surcharge plus the delivery fee they
		// earn by bringing the vehicle out.
		driverPortion = breakdown.DriverSurchargeCents + breakdown.DeliveryFeeCents
	}

	stl, err := settlement.Settle(breakdown.TotalCents, hasSurcharge, driverPortion, ptype, method)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := domain.RentalStatusActive
	if quote.DeliveryAddress != "" {
		status = domain.RentalStatusDelivering
	}

	rental := &domain.Rental{
		ID:                   uuid.NewString(),
		VehicleID:            quote.VehicleID,
		PassengerEmail:       quote.PassengerEmail,
		OwnerEmail:           tariff.OwnerEmail,
		DriverEmail:          elig.DriverEmail,
		StartDate:            now,
		EndDate:              now.Add(rentalWindow(quote.Unit, quote.DurationCount)),
		Status:               status,
		Unit:                 quote.Unit,
		DurationCount:        quote.DurationCount,
		BaseCents:            breakdown.BaseCents,
		DriverSurchargeCents: breakdown.DriverSurchargeCents,
		DeliveryFeeCents:     breakdown.DeliveryFeeCents,
		TotalCents:           breakdown.TotalCents,
	}

	// One transaction: a failed settlement write must not leave a rental
	// without its income split, and the quote stays live for a retry.
	if err := s.bookings.CreateBooking(ctx, rental, settlementEntries(rental, &stl)); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.mu.Lock()
	if cur, ok := s.quotes[quoteID]; ok {
		if cur.cancelCheck != nil {
			cur.cancelCheck()
		}
		delete(s.quotes, quoteID)
	}
	s.mu.Unlock()

	s.tracker.Track(rental)

	logger.Info("Booking confirmed",
		"rental_id", rental.ID, "vehicle_id", rental.VehicleID,
		"total_cents", stl.TotalCents, "payment_type", stl.PaymentType)

	return &domain.BookingConfirmation{
		RentalID:    rental.ID,
		Quote:       quote,
		Breakdown:   breakdown,
		Eligibility: elig,
		Settlement:  stl,
	}, nil
}

// settlementEntries builds the income split for the ledger. Entries always
// sum to the settlement total.
func settlementEntries(rental *domain.Rental, stl *domain.PaymentSettlement) []domain.LedgerEntry {
	entries := []domain.LedgerEntry{{
		RentalID:    rental.ID,
		Email:       rental.OwnerEmail,
		AmountCents: stl.OwnerIncomeCents,
		Type:        domain.LedgerEntryOwnerIncome,
		Description: fmt.Sprintf("Owner income for rental %s", rental.ID),
	}}
	if stl.DriverIncomeCents > 0 {
		entries = append(entries, domain.LedgerEntry{
			RentalID:    rental.ID,
			Email:       rental.DriverEmail,
			AmountCents: stl.DriverIncomeCents,
			Type:        domain.LedgerEntryDriverIncome,
			Description: fmt.Sprintf("Driver income for rental %s", rental.ID),
		})
	}
	return entries
}

func rentalWindow(unit domain.DurationUnit, count int) time.Duration {
	switch unit {
	case domain.DurationUnitHour:
		return time.Duration(count) * time.Hour
	case domain.DurationUnitWeek:
		return time.Duration(count) * 7 * 24 * time.Hour
	default:
		return time.Duration(count) * 24 * time.Hour
	}
}
