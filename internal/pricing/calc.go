package pricing

import (
	"math"

	"rentaride-backend/internal/domain"
)

// Delivery fee parameters: delivery is free within the radius, then billed
// per kilometer beyond it, rounded down to whole currency units.
const (
	DeliveryFreeRadiusKm   = 20.0
	DeliveryRatePerKmCents = 600
)

// RatePerUnit returns the vehicle's rate for the chosen billing unit.
// An undefined rate is 0, meaning the unit is unsupported, not an error.
func RatePerUnit(t *domain.VehicleTariff, unit domain.DurationUnit) int64 {
	switch unit {
	case domain.DurationUnitHour:
		return t.PricePerHourCents
	case domain.DurationUnitDay:
		return t.PricePerDayCents
	case domain.DurationUnitWeek:
		return t.PricePerWeekCents
	default:
		return 0
	}
}

// DriverRatePerUnit returns the driver's per-unit rate, 0 when undefined.
func DriverRatePerUnit(t *domain.VehicleTariff, unit domain.DurationUnit) int64 {
	switch unit {
	case domain.DurationUnitHour:
		return t.DriverPricePerHourCents
	case domain.DurationUnitDay:
		return t.DriverPricePerDayCents
	case domain.DurationUnitWeek:
		return t.DriverPricePerWeekCents
	default:
		return 0
	}
}

// DeliveryFee computes the distance-based delivery fee: 0 within the free
// radius, floor((km - radius) * rate) beyond it. Rounding is always down so
// fractional distance never overcharges.
func DeliveryFee(distanceKm float64) int64 {
	if distanceKm <= DeliveryFreeRadiusKm {
		return 0
	}
	return int64(math.Floor((distanceKm - DeliveryFreeRadiusKm) * DeliveryRatePerKmCents))
}

// ComputePrice combines tariff, duration and delivery distance into a full
// price breakdown. distanceKm == nil means the route lookup has not
// resolved; the fee is 0 and the breakdown is marked provisional so the
// caller recomputes once distance is known.
//
// Pure function of its inputs: safe to call on every quote change.
func ComputePrice(t *domain.VehicleTariff, unit domain.DurationUnit, count int, withDriver bool, distanceKm *float64) (domain.PriceBreakdown, error) {
	if count < 1 {
		return domain.PriceBreakdown{}, domain.ErrInvalidDuration
	}

	base := RatePerUnit(t, unit) * int64(count)

	var surcharge int64
	if withDriver && t.SupportsDriverSurcharge() {
		if rate := DriverRatePerUnit(t, unit); rate > 0 {
			surcharge = rate * int64(count)
		}
	}

	var fee int64
	provisional := distanceKm == nil
	if distanceKm != nil {
		fee = DeliveryFee(*distanceKm)
	}

	return domain.PriceBreakdown{
		BaseCents:            base,
		DriverSurchargeCents: surcharge,
		DeliveryFeeCents:     fee,
		TotalCents:           base + surcharge + fee,
		Provisional:          provisional,
	}, nil
}
