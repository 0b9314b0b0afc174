package domain

type CheckState string

const (
	CheckNotStarted CheckState = "NOT_STARTED"
	CheckRunning    CheckState = "CHECKING"
	CheckValid      CheckState = "VALID"
	CheckInvalid    CheckState = "INVALID"
)

type IneligibleReason string

const (
	ReasonDriverNotFound     IneligibleReason = "DRIVER_NOT_FOUND"
	ReasonDriverOffline      IneligibleReason = "DRIVER_OFFLINE"
	ReasonLicenseMismatch    IneligibleReason = "LICENSE_MISMATCH"
	ReasonVehicleTypeUnknown IneligibleReason = "VEHICLE_TYPE_UNKNOWN"
	ReasonDriverUnselected   IneligibleReason = "DRIVER_UNSELECTED"
)

// EligibilityResult is the tagged outcome of validating a (vehicle, driver)
// pair. Short-lived: each recomputation produces a new result that
// supersedes any prior one for the same quote.
type EligibilityResult struct {
	State       CheckState       `json:"state"`
	Reason      IneligibleReason `json:"reason,omitempty"`
	Message     string           `json:"message,omitempty"`
	DriverEmail string           `json:"driver_email,omitempty"` // resolved driver, when any
}

func (r EligibilityResult) Valid() bool {
	return r.State == CheckValid
}

func EligibilityValid(driverEmail string) EligibilityResult {
	return EligibilityResult{State: CheckValid, DriverEmail: driverEmail}
}

func EligibilityInvalid(reason IneligibleReason, msg, driverEmail string) EligibilityResult {
	return EligibilityResult{State: CheckInvalid, Reason: reason, Message: msg, DriverEmail: driverEmail}
}
