// Package overtime derives remaining/elapsed/overtime state for an
// in-progress rental and projects a live overtime fee estimate. The
// authoritative charge is finalized by return processing, not here.
package overtime

import (
	"context"
	"math"
	"sync"
	"time"

	"rentaride-backend/internal/domain"
)

// DefaultRatePerHourCents is the flat overtime rate applied per started
// hour past the commitment deadline.
const DefaultRatePerHourCents = 50000

// DefaultTickInterval is the monitor cadence.
const DefaultTickInterval = time.Second

// Snapshot is one derived view of a running rental at a point in time.
type Snapshot struct {
	Remaining time.Duration // > 0 while inside the commitment window
	Elapsed   time.Duration // overtime elapsed once past the deadline
	Overtime  bool
	Progress  float64 // (now-start)/(end-start), clamped to [0,1]
	FeeCents  int64   // live estimate, ceil(hours) * rate
	Status    domain.RentalStatus
}

// Fee estimates the overtime charge for the given elapsed overtime:
// ceil(hours) * rate, so any started hour bills as a full hour.
func Fee(elapsed time.Duration, ratePerHourCents int64) int64 {
	if elapsed <= 0 {
		return 0
	}
	hours := math.Ceil(elapsed.Hours())
	return int64(hours) * ratePerHourCents
}

// At computes the snapshot for a rental window at the given instant.
func At(start, end, now time.Time, ratePerHourCents int64) Snapshot {
	diff := end.Sub(now)

	window := end.Sub(start)
	progress := 1.0
	if window > 0 {
		progress = float64(now.Sub(start)) / float64(window)
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	if diff > 0 {
		return Snapshot{
			Remaining: diff,
			Progress:  progress,
			Status:    domain.RentalStatusActive,
		}
	}

	elapsed := -diff
	return Snapshot{
		Elapsed:  elapsed,
		Overtime: true,
		Progress: 1,
		FeeCents: Fee(elapsed, ratePerHourCents),
		Status:   domain.RentalStatusOverdue,
	}
}

// Monitor ticks once per interval for a single rental and publishes
// snapshots to its callback. Each rental gets its own monitor instance;
// there is no shared timer state.
type Monitor struct {
	start    time.Time
	end      time.Time
	rate     int64
	interval time.Duration
	onTick   func(Snapshot)
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewMonitor builds a monitor for one rental window. onTick runs on every
// tick with a fresh snapshot, including the tick where the rental crosses
// into overtime.
func NewMonitor(rental *domain.Rental, ratePerHourCents int64, onTick func(Snapshot)) *Monitor {
	return &Monitor{
		start:    rental.StartDate,
		end:      rental.EndDate,
		rate:     ratePerHourCents,
		interval: DefaultTickInterval,
		onTick:   onTick,
		now:      time.Now,
	}
}

// Start begins ticking until Stop is called or ctx is cancelled. Calling
// Start on a stopped monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.stopped || m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	go m.run(ctx)
}

func (m *Monitor) run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.onTick(At(m.start, m.end, m.now(), m.rate))
		}
	}
}

// Stop cancels the ticker. Mandatory on status change or teardown so no
// timer leaks; safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
