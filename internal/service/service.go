package service

import (
	"context"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/overtime"
)

// RouteProvider resolves a driving distance between two addresses. Failure
// means "distance unknown", never a blocked quote.
type RouteProvider interface {
	DistanceKm(ctx context.Context, origin, destination string) (float64, error)
}

// PresenceStore answers whether a driver currently has a live heartbeat.
type PresenceStore interface {
	IsOnline(ctx context.Context, email string) (bool, error)
}

// DriverRegistry returns a point-in-time driver snapshot: persisted record
// plus live online state. Returns domain.ErrDriverNotFound for unknown
// drivers.
type DriverRegistry interface {
	GetProfile(ctx context.Context, email string) (*domain.DriverProfile, error)
}

// Notifier delivers outbound mail. Send failures are the caller's to
// handle; nothing here retries.
type Notifier interface {
	SendOwnerContactRequest(ctx context.Context, ownerEmail, vehicleName, passengerEmail, message string) error
	SendOverdueReminder(ctx context.Context, passengerEmail, vehicleName string, feeCents int64) error
}

// QuoteRequest creates a new booking draft.
type QuoteRequest struct {
	VehicleID       string              `json:"vehicle_id"`
	PassengerEmail  string              `json:"passenger_email"`
	Unit            domain.DurationUnit `json:"unit"`
	DurationCount   int                 `json:"duration_count"`
	WithDriver      bool                `json:"with_driver"`
	DriverEmail     string              `json:"driver_email"`
	DeliveryAddress string              `json:"delivery_address"`
}

// QuotePatch mutates a booking draft; nil fields are untouched. Every
// applied patch produces a new quote value and triggers recomputation.
type QuotePatch struct {
	Unit            *domain.DurationUnit `json:"unit,omitempty"`
	DurationCount   *int                 `json:"duration_count,omitempty"`
	WithDriver      *bool                `json:"with_driver,omitempty"`
	DriverEmail     *string              `json:"driver_email,omitempty"`
	DeliveryAddress *string              `json:"delivery_address,omitempty"`
}

// Checkout call-to-action labels, reflecting which handshake step is
// outstanding.
const (
	ActionCheckout             = "checkout"
	ActionContactOwner         = "contact_owner"
	ActionAwaitingConfirmation = "awaiting_confirmation"
)

// QuoteView is the assembled state of one booking draft.
type QuoteView struct {
	Quote          domain.RentalQuote       `json:"quote"`
	Breakdown      domain.PriceBreakdown    `json:"breakdown"`
	Eligibility    domain.EligibilityResult `json:"eligibility"`
	ContactState   domain.OwnerContactState `json:"contact_state"`
	CheckoutAction string                   `json:"checkout_action"`
}

type BookingService interface {
	CreateQuote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
	UpdateQuote(ctx context.Context, quoteID string, patch QuotePatch) (*QuoteView, error)
	GetQuote(ctx context.Context, quoteID string) (*QuoteView, error)
	DiscardQuote(ctx context.Context, quoteID string) error
	RequestOwnerContact(ctx context.Context, quoteID, message string) (*domain.ContactRequest, error)
	ConfirmOwnerContact(ctx context.Context, quoteID string) error
	AbandonOwnerContact(ctx context.Context, quoteID string) error
	Checkout(ctx context.Context, quoteID string, ptype domain.PaymentType, method domain.PaymentMethod) (*domain.BookingConfirmation, error)
}

type RentalService interface {
	Get(ctx context.Context, rentalID string) (*domain.Rental, error)
	List(ctx context.Context, passengerEmail, status string, page, pageSize int32) ([]domain.Rental, int32, error)
	// Track begins overtime monitoring for a running rental.
	Track(rental *domain.Rental)
	// Handover flips a delivered vehicle to ACTIVE and starts its monitor.
	Handover(ctx context.Context, rentalID string) (*domain.Rental, error)
	// Return closes the rental and finalizes the authoritative overtime
	// charge into the ledger.
	Return(ctx context.Context, rentalID string) (*domain.Rental, error)
	Cancel(ctx context.Context, rentalID string) (*domain.Rental, error)
	// Overtime is the live countdown/overdue view for a running rental.
	Overtime(ctx context.Context, rentalID string) (*overtime.Snapshot, error)
	// ResumeMonitors re-arms monitors for running rentals after a restart.
	ResumeMonitors(ctx context.Context) error
	// Shutdown stops all monitors.
	Shutdown()
}
