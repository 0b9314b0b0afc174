package domain

import "errors"

// Engine error taxonomy. All are recoverable and surfaced as typed results
// to the caller; the surrounding booking flow decides presentation.
var (
	// ErrInvalidDuration rejects a non-positive or unparsable duration
	// count. Never silently clamped inside the engine.
	ErrInvalidDuration = errors.New("duration count must be a positive integer")

	// ErrDistanceUnavailable marks a failed or unresolved route lookup.
	// Pricing proceeds with a provisional zero delivery fee.
	ErrDistanceUnavailable = errors.New("delivery distance unavailable")

	// ErrUnsupportedPaymentCombination blocks settlement for payment
	// method/type pairs that cannot be honored (cash with DP).
	ErrUnsupportedPaymentCombination = errors.New("unsupported payment method and type combination")

	// ErrOwnerContactNotConfirmed gates checkout while the owner handshake
	// is still pending.
	ErrOwnerContactNotConfirmed = errors.New("owner contact not yet confirmed")

	// ErrSettlementContract reports a caller precondition violation
	// (negative total, driver portion outside [0, total]).
	ErrSettlementContract = errors.New("settlement contract violation")

	ErrQuoteNotFound   = errors.New("quote not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrDriverNotFound  = errors.New("driver not found")
	ErrRentalNotFound  = errors.New("rental not found")
)
