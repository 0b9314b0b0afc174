package service

import (
	"context"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/repository"
)

type driverRegistry struct {
	drivers  repository.DriverRepository
	presence PresenceStore
}

// NewDriverRegistry layers live presence on top of the persisted driver
// records. A presence read failure degrades to offline rather than
// failing the lookup; eligibility re-runs on the next input change anyway.
func NewDriverRegistry(drivers repository.DriverRepository, presence PresenceStore) DriverRegistry {
	return &driverRegistry{drivers: drivers, presence: presence}
}

func (r *driverRegistry) GetProfile(ctx context.Context, email string) (*domain.DriverProfile, error) {
	profile, err := r.drivers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	online, err := r.presence.IsOnline(ctx, email)
	if err != nil {
		logger.Warn("Presence lookup failed, treating driver as offline", "driver", email, "error", err)
		online = false
	}
	profile.Online = online
	return profile, nil
}
