package domain

import "time"

type RentalStatus string

const (
	RentalStatusDelivering RentalStatus = "DELIVERING"
	RentalStatusActive     RentalStatus = "ACTIVE"
	RentalStatusOverdue    RentalStatus = "OVERDUE"
	RentalStatusCompleted  RentalStatus = "COMPLETED"
	RentalStatusCancelled  RentalStatus = "CANCELLED"
)

// Rental is a confirmed, running rental. StartDate/EndDate frame the
// commitment window; the overtime monitor derives overdue state from them
// and return processing finalizes the authoritative overtime charge.
type Rental struct {
	ID             string       `json:"id"`
	VehicleID      string       `json:"vehicle_id"`
	PassengerEmail string       `json:"passenger_email"`
	OwnerEmail     string       `json:"owner_email"`
	DriverEmail    string       `json:"driver_email,omitempty"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	ReturnedOn     *time.Time   `json:"returned_on,omitempty"`
	Status         RentalStatus `json:"status"`

	// Price snapshot fields, captured at checkout. All later charges
	// (overtime included) use these, not live catalog prices.
	Unit                 DurationUnit `json:"unit"`
	DurationCount        int          `json:"duration_count"`
	BaseCents            int64        `json:"base_cents"`
	DriverSurchargeCents int64        `json:"driver_surcharge_cents"`
	DeliveryFeeCents     int64        `json:"delivery_fee_cents"`
	TotalCents           int64        `json:"total_cents"`
	OvertimeFeeCents     int64        `json:"overtime_fee_cents"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Running reports whether the rental still accrues time against its
// commitment window.
func (r *Rental) Running() bool {
	return r.Status == RentalStatusActive || r.Status == RentalStatusOverdue
}
