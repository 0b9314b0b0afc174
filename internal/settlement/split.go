// Package settlement computes the owner/driver income split and the
// DP-vs-full payment schedule for a priced booking. It knows nothing about
// how money moves; that is the payment gateway's job.
package settlement

import (
	"fmt"

	"rentaride-backend/internal/domain"
)

// Settle splits total between owner and driver and derives the payment
// schedule. driverPortionCents is the driver surcharge plus any
// delivery-related driver cut from the price breakdown; it is ignored when
// hasDriverSurcharge is false.
//
// Inputs are expected to be pre-validated; a negative total or a driver
// portion outside [0, total] is a caller contract violation and fails with
// ErrSettlementContract.
func Settle(totalCents int64, hasDriverSurcharge bool, driverPortionCents int64, ptype domain.PaymentType, method domain.PaymentMethod) (domain.PaymentSettlement, error) {
	if totalCents < 0 {
		return domain.PaymentSettlement{}, fmt.Errorf("%w: negative total %d", domain.ErrSettlementContract, totalCents)
	}
	if hasDriverSurcharge && (driverPortionCents < 0 || driverPortionCents > totalCents) {
		return domain.PaymentSettlement{}, fmt.Errorf("%w: driver portion %d outside [0, %d]", domain.ErrSettlementContract, driverPortionCents, totalCents)
	}

	// Cash cannot carry a split payment; the caller must switch the method
	// or pay in full. Never silently switch for them.
	if method == domain.PaymentMethodCash && ptype == domain.PaymentTypeDP {
		return domain.PaymentSettlement{}, domain.ErrUnsupportedPaymentCombination
	}

	ownerIncome := totalCents
	var driverIncome int64
	if hasDriverSurcharge {
		driverIncome = driverPortionCents
		ownerIncome = totalCents - driverPortionCents
	}

	dueNow, remainder := PaymentPlan(totalCents, ptype)

	return domain.PaymentSettlement{
		TotalCents:         totalCents,
		OwnerIncomeCents:   ownerIncome,
		DriverIncomeCents:  driverIncome,
		PaymentType:        ptype,
		PaymentMethod:      method,
		DueNowCents:        dueNow,
		DueOnDeliveryCents: remainder,
	}, nil
}

// PaymentPlan splits total into the amount due now and the remainder due on
// delivery. DP pays floor(total/2) now; the remainder carries any odd unit
// so the two always sum back to total.
func PaymentPlan(totalCents int64, ptype domain.PaymentType) (dueNow, remainder int64) {
	if ptype == domain.PaymentTypeDP {
		dueNow = totalCents / 2
		return dueNow, totalCents - dueNow
	}
	return totalCents, 0
}
