package jobs

import (
	"context"
	"time"

	"rentaride-backend/internal/domain"
	"rentaride-backend/internal/logger"
	"rentaride-backend/internal/overtime"
)

// MarkOverdueRentals flips ACTIVE rentals past their deadline to OVERDUE.
// This is the safety net behind the per-rental monitors: it catches
// rentals whose monitor was lost to a crash or restart.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		flipped, err := jr.rentals.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}

		logger.Info("Marked rentals as overdue", "count", len(flipped))
		for _, r := range flipped {
			logger.Debug("Marked rental as overdue",
				"rental_id", r.ID,
				"passenger", r.PassengerEmail,
				"vehicle_id", r.VehicleID,
				"end_date", r.EndDate.Format(time.RFC3339))
		}
	})
}

// SendOverdueReminders mails every passenger holding an OVERDUE rental the
// overtime accrued so far.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.rentals.ListByStatus(ctx, domain.RentalStatusOverdue)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		rate := jr.config.Billing.OvertimeRatePerHourCents
		sent := 0
		for _, r := range overdue {
			fee := overtime.Fee(time.Since(r.EndDate), rate)

			vehicleName := r.VehicleID
			if v, err := jr.vehicles.GetByID(ctx, r.VehicleID); err == nil {
				vehicleName = v.Name
			}

			if err := jr.notifier.SendOverdueReminder(ctx, r.PassengerEmail, vehicleName, fee); err != nil {
				logger.Error("Failed to send overdue reminder",
					"rental_id", r.ID, "passenger", r.PassengerEmail, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue reminders", "count", sent, "overdue_total", len(overdue))
	})
}
