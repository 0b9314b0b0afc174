package domain

type DurationUnit string

const (
	DurationUnitHour DurationUnit = "HOUR"
	DurationUnitDay  DurationUnit = "DAY"
	DurationUnitWeek DurationUnit = "WEEK"
)

// RentalQuote is the working draft of a booking. It is treated as an
// immutable value: every mutation produces a new quote (see
// service.BookingService), which is what makes recomputation safe to run
// on every field change.
type RentalQuote struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicle_id"`

	Unit          DurationUnit `json:"unit"`
	DurationCount int          `json:"duration_count"`

	WithDriver  bool   `json:"with_driver"`
	DriverEmail string `json:"driver_email,omitempty"` // passenger-selected

	// Delivery destination. DistanceKm is nil until a route lookup for the
	// current address has resolved; pricing treats nil as "unknown".
	DeliveryAddress string   `json:"delivery_address,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`

	PassengerEmail string `json:"passenger_email"`
}

// PriceBreakdown is the derived output of the pricing calculator. It is
// never mutated in place; each recomputation produces a fresh value.
type PriceBreakdown struct {
	BaseCents            int64 `json:"base_cents"`
	DriverSurchargeCents int64 `json:"driver_surcharge_cents"`
	DeliveryFeeCents     int64 `json:"delivery_fee_cents"`
	TotalCents           int64 `json:"total_cents"`

	// Provisional is set when the delivery distance was unknown at compute
	// time. The delivery fee is zero in that case and the caller must
	// recompute once the route lookup resolves.
	Provisional bool `json:"provisional"`
}

// BookingConfirmation is the record handed to the booking flow when the
// passenger completes checkout.
type BookingConfirmation struct {
	RentalID    string            `json:"rental_id"`
	Quote       RentalQuote       `json:"quote"`
	Breakdown   PriceBreakdown    `json:"breakdown"`
	Eligibility EligibilityResult `json:"eligibility"`
	Settlement  PaymentSettlement `json:"settlement"`
}
