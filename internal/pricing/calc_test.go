package pricing

import (
	"testing"

	"rentaride-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func carTariff() *domain.VehicleTariff {
	return &domain.VehicleTariff{
		ID:                     "veh-1",
		Category:               domain.VehicleCategoryCar,
		PricePerHourCents:      50000,
		PricePerDayCents:       300000,
		PricePerWeekCents:      1800000,
		DriverPricePerDayCents: 150000,
	}
}

func km(v float64) *float64 { return &v }

func TestRatePerUnit(t *testing.T) {
	tariff := carTariff()

	assert.Equal(t, int64(50000), RatePerUnit(tariff, domain.DurationUnitHour))
	assert.Equal(t, int64(300000), RatePerUnit(tariff, domain.DurationUnitDay))
	assert.Equal(t, int64(1800000), RatePerUnit(tariff, domain.DurationUnitWeek))

	t.Run("Unknown unit is unsupported, not an error", func(t *testing.T) {
		assert.Equal(t, int64(0), RatePerUnit(tariff, domain.DurationUnit("FORTNIGHT")))
	})
}

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		name     string
		km       float64
		expected int64
	}{
		{"Exactly at free radius", 20, 0},
		{"Fraction beyond radius floors to zero", 20.0001, 0},
		{"One km beyond", 21, 600},
		{"Ten km beyond", 30, 6000},
		{"Within radius", 10, 0},
		{"Zero distance", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeliveryFee(tt.km))
		})
	}
}

func TestComputePrice(t *testing.T) {
	tariff := carTariff()

	t.Run("Simple car rental, no driver, near delivery", func(t *testing.T) {
		bd, err := ComputePrice(tariff, domain.DurationUnitDay, 2, false, km(10))
		assert.NoError(t, err)
		assert.Equal(t, int64(600000), bd.BaseCents)
		assert.Equal(t, int64(0), bd.DriverSurchargeCents)
		assert.Equal(t, int64(0), bd.DeliveryFeeCents)
		assert.Equal(t, int64(600000), bd.TotalCents)
		assert.False(t, bd.Provisional)
	})

	t.Run("Car plus driver, far delivery", func(t *testing.T) {
		bd, err := ComputePrice(tariff, domain.DurationUnitDay, 2, true, km(25))
		assert.NoError(t, err)
		assert.Equal(t, int64(600000), bd.BaseCents)
		assert.Equal(t, int64(300000), bd.DriverSurchargeCents)
		assert.Equal(t, int64(3000), bd.DeliveryFeeCents)
		assert.Equal(t, int64(903000), bd.TotalCents)
	})

	t.Run("Unknown distance is provisional zero fee", func(t *testing.T) {
		bd, err := ComputePrice(tariff, domain.DurationUnitDay, 2, false, nil)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), bd.DeliveryFeeCents)
		assert.Equal(t, int64(600000), bd.TotalCents)
		assert.True(t, bd.Provisional)
	})

	t.Run("Non-positive duration rejected", func(t *testing.T) {
		_, err := ComputePrice(tariff, domain.DurationUnitDay, 0, false, km(5))
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)

		_, err = ComputePrice(tariff, domain.DurationUnitDay, -3, false, km(5))
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})

	t.Run("No surcharge without a driver rate for the unit", func(t *testing.T) {
		// Tariff defines a daily driver rate only; weekly stays at 0.
		bd, err := ComputePrice(tariff, domain.DurationUnitWeek, 1, true, km(5))
		assert.NoError(t, err)
		assert.Equal(t, int64(0), bd.DriverSurchargeCents)
		assert.Equal(t, int64(1800000), bd.TotalCents)
	})

	t.Run("No surcharge when driver not requested", func(t *testing.T) {
		bd, err := ComputePrice(tariff, domain.DurationUnitDay, 3, false, km(5))
		assert.NoError(t, err)
		assert.Equal(t, int64(0), bd.DriverSurchargeCents)
	})

	t.Run("Monotonic in duration count", func(t *testing.T) {
		prev := int64(-1)
		for count := 1; count <= 10; count++ {
			bd, err := ComputePrice(tariff, domain.DurationUnitHour, count, false, km(0))
			assert.NoError(t, err)
			assert.Greater(t, bd.TotalCents, prev)
			prev = bd.TotalCents
		}
	})
}
