package domain

import "time"

// OwnerContactState models the manual owner handshake used when no driver
// can be assigned automatically. Transitions are one-directional within a
// booking session: Requested -> Contacted -> Confirmed.
type OwnerContactState string

const (
	ContactNone      OwnerContactState = "NONE"
	ContactRequested OwnerContactState = "REQUESTED"
	ContactContacted OwnerContactState = "CONTACTED"
	ContactConfirmed OwnerContactState = "CONFIRMED"
)

// Rank orders handshake states so monotonicity can be enforced: a
// transition is legal only to a strictly higher rank.
func (s OwnerContactState) Rank() int {
	switch s {
	case ContactRequested:
		return 1
	case ContactContacted:
		return 2
	case ContactConfirmed:
		return 3
	default:
		return 0
	}
}

// ContactRequest is the persisted record of one owner-contact handshake.
type ContactRequest struct {
	ID             string            `json:"id"`
	QuoteID        string            `json:"quote_id"`
	VehicleID      string            `json:"vehicle_id"`
	OwnerEmail     string            `json:"owner_email"`
	PassengerEmail string            `json:"passenger_email"`
	Message        string            `json:"message"`
	State          OwnerContactState `json:"state"`
	CreatedOn      time.Time         `json:"created_on"`
	UpdatedOn      time.Time         `json:"updated_on"`
}
