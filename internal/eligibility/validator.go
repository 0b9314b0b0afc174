// Package eligibility decides whether a specific driver may be assigned to
// a specific vehicle request. The rules here are pure; the asynchronous
// lookup and cancel-on-change discipline live in the booking service.
package eligibility

import (
	"fmt"

	"rentaride-backend/internal/domain"
)

// ResolveDriverEmail picks which driver a quote should be validated
// against. Precedence: a driver bound to the vehicle in
// delivery-and-rental mode always wins, then the passenger's selection,
// then any driver carried on the vehicle record itself.
func ResolveDriverEmail(t *domain.VehicleTariff, selectedEmail string) (string, bool) {
	if t.AssignmentMode == domain.DriverAssignmentDeliveryAndRental && t.DriverEmail != "" {
		return t.DriverEmail, true
	}
	if selectedEmail != "" {
		return selectedEmail, true
	}
	if t.DriverEmail != "" {
		return t.DriverEmail, true
	}
	return "", false
}

// Evaluate runs the validation rules in order, short-circuiting on the
// first failure. profile may be nil when the registry had no record.
func Evaluate(profile *domain.DriverProfile, category domain.VehicleCategory, driverEmail string) domain.EligibilityResult {
	if profile == nil {
		return domain.EligibilityInvalid(domain.ReasonDriverNotFound,
			fmt.Sprintf("driver %s is not registered", driverEmail), driverEmail)
	}

	if !profile.Online {
		return domain.EligibilityInvalid(domain.ReasonDriverOffline,
			fmt.Sprintf("driver %s is offline", profile.Email), profile.Email)
	}

	required, ok := domain.RequiredLicense(category)
	if !ok {
		return domain.EligibilityInvalid(domain.ReasonVehicleTypeUnknown,
			fmt.Sprintf("vehicle category %q has no license requirement", category), profile.Email)
	}

	if !profile.HoldsLicense(required) {
		return domain.EligibilityInvalid(domain.ReasonLicenseMismatch,
			fmt.Sprintf("driver %s is missing %s", profile.Email, required), profile.Email)
	}

	return domain.EligibilityValid(profile.Email)
}

// Unselected is the result used when no driver resolves for a quote that
// asked for one; no registry lookup happens in that case.
func Unselected() domain.EligibilityResult {
	return domain.EligibilityInvalid(domain.ReasonDriverUnselected, "no driver selected for this request", "")
}
