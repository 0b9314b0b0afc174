package domain

import "strings"

type LicenseCategory string

const (
	LicenseA LicenseCategory = "LICENSE_A" // car
	LicenseC LicenseCategory = "LICENSE_C" // motorcycle
)

// RequiredLicense maps a vehicle category to the license a driver must hold
// to operate it. ok is false for unrecognized categories.
func RequiredLicense(category VehicleCategory) (LicenseCategory, bool) {
	switch category {
	case VehicleCategoryCar:
		return LicenseA, true
	case VehicleCategoryMotorcycle:
		return LicenseC, true
	default:
		return "", false
	}
}

// DriverProfile is a read-only snapshot of a driver fetched per validation
// attempt. The Online flag may go stale; callers re-fetch whenever the
// driver, vehicle, or driver-request changes.
type DriverProfile struct {
	Email    string            `json:"email"`
	Name     string            `json:"name"`
	Online   bool              `json:"online"`
	Licenses []LicenseCategory `json:"licenses"`
}

// HoldsLicense reports whether the profile's certification set contains the
// given category.
func (p *DriverProfile) HoldsLicense(cat LicenseCategory) bool {
	for _, l := range p.Licenses {
		if l == cat {
			return true
		}
	}
	return false
}

// ParseLicenseSet parses a comma-joined certification list as stored in the
// driver registry. Malformed or unknown tokens are dropped, never an error.
func ParseLicenseSet(raw string) []LicenseCategory {
	var out []LicenseCategory
	for _, tok := range strings.Split(raw, ",") {
		switch LicenseCategory(strings.ToUpper(strings.TrimSpace(tok))) {
		case LicenseA:
			out = append(out, LicenseA)
		case LicenseC:
			out = append(out, LicenseC)
		}
	}
	return out
}

// JoinLicenseSet is the inverse of ParseLicenseSet, used when persisting a
// profile back to the registry.
func JoinLicenseSet(licenses []LicenseCategory) string {
	parts := make([]string, 0, len(licenses))
	for _, l := range licenses {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ",")
}
