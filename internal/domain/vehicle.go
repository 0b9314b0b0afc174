package domain

type VehicleCategory string

const (
	VehicleCategoryCar        VehicleCategory = "CAR"
	VehicleCategoryMotorcycle VehicleCategory = "MOTORCYCLE"
)

type DriverAssignmentMode string

const (
	DriverAssignmentNone              DriverAssignmentMode = "NONE"
	DriverAssignmentDeliveryOnly      DriverAssignmentMode = "DELIVERY_ONLY"
	DriverAssignmentDeliveryAndRental DriverAssignmentMode = "DELIVERY_AND_RENTAL"
)

type DriverAvailability string

const (
	DriverAvailableFull         DriverAvailability = "AVAILABLE_FULL"
	DriverAvailableDeliveryOnly DriverAvailability = "AVAILABLE_DELIVERY_ONLY"
	DriverNotAvailable          DriverAvailability = "NOT_AVAILABLE"
)

// VehicleTariff is the pricing snapshot of a vehicle taken from the catalog.
// It is immutable for the lifetime of a rental quote; quote recomputation
// always starts from the same snapshot.
type VehicleTariff struct {
	ID         string          `json:"id"`
	OwnerEmail string          `json:"owner_email"`
	Name       string          `json:"name"`
	Category   VehicleCategory `json:"category"`
	// Location is the pickup address, the origin for delivery routing.
	Location string `json:"location"`

	PricePerHourCents int64 `json:"price_per_hour_cents"`
	PricePerDayCents  int64 `json:"price_per_day_cents"`
	PricePerWeekCents int64 `json:"price_per_week_cents"`

	// Driver rates are optional; a zero rate means no driver surcharge is
	// defined for that unit.
	DriverPricePerHourCents int64 `json:"driver_price_per_hour_cents"`
	DriverPricePerDayCents  int64 `json:"driver_price_per_day_cents"`
	DriverPricePerWeekCents int64 `json:"driver_price_per_week_cents"`

	// DriverEmail is the driver bound to this vehicle, if any.
	DriverEmail        string               `json:"driver_email,omitempty"`
	AssignmentMode     DriverAssignmentMode `json:"assignment_mode"`
	DriverAvailability DriverAvailability   `json:"driver_availability"`
}

// SupportsDriverSurcharge reports whether the vehicle category participates
// in driver surcharge pricing at all. Unrecognized categories do not.
func (t *VehicleTariff) SupportsDriverSurcharge() bool {
	switch t.Category {
	case VehicleCategoryCar, VehicleCategoryMotorcycle:
		return true
	default:
		return false
	}
}
