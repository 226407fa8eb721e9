package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuelConstraintAvailableAt(t *testing.T) {
	t.Run("same-day window is inclusive on both ends", func(t *testing.T) {
		solar := FuelConstraint{Fuel: "solar", HourMin: 6, HourMax: 18, MaxCapacityFactor: 1}
		assert.False(t, solar.AvailableAt(5))
		assert.True(t, solar.AvailableAt(6))
		assert.True(t, solar.AvailableAt(12))
		assert.True(t, solar.AvailableAt(18))
		assert.False(t, solar.AvailableAt(19))
	})

	t.Run("window wraps across midnight when HourMin > HourMax", func(t *testing.T) {
		night := FuelConstraint{Fuel: "wind", HourMin: 20, HourMax: 4, MaxCapacityFactor: 1}
		assert.True(t, night.AvailableAt(22))
		assert.True(t, night.AvailableAt(0))
		assert.True(t, night.AvailableAt(4))
		assert.False(t, night.AvailableAt(5))
		assert.False(t, night.AvailableAt(12))
	})

	t.Run("unconstrained covers every hour", func(t *testing.T) {
		u := Unconstrained("gas")
		for h := 0; h < 24; h++ {
			assert.True(t, u.AvailableAt(h), "hour %d", h)
		}
		assert.Equal(t, 1.0, u.MaxCapacityFactor)
		assert.Equal(t, 0.0, u.MinCapacityFactor)
	})
}

func TestFuelConstraintValidate(t *testing.T) {
	cases := []struct {
		name    string
		c       FuelConstraint
		wantErr bool
	}{
		{"valid", FuelConstraint{Fuel: "solar", HourMin: 6, HourMax: 18, MaxCapacityFactor: 0.9, MinCapacityFactor: 0.1}, false},
		{"missing fuel", FuelConstraint{HourMin: 0, HourMax: 23, MaxCapacityFactor: 1}, true},
		{"hour out of range", FuelConstraint{Fuel: "solar", HourMin: 0, HourMax: 24, MaxCapacityFactor: 1}, true},
		{"max factor above one", FuelConstraint{Fuel: "solar", HourMin: 0, HourMax: 23, MaxCapacityFactor: 1.5}, true},
		{"min above max", FuelConstraint{Fuel: "solar", HourMin: 0, HourMax: 23, MaxCapacityFactor: 0.5, MinCapacityFactor: 0.8}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDemandSeriesFilter(t *testing.T) {
	base := time.Date(2025, 12, 31, 22, 0, 0, 0, time.UTC)
	d := DemandSeries{
		ByBus: map[string][]float64{"bus_1": {10, 20, 30, 40}, "bus_2": {1, 2, 3, 4}},
	}
	for i := 0; i < 4; i++ {
		d.Timestamps = append(d.Timestamps, base.Add(time.Duration(i)*time.Hour))
	}
	require.NoError(t, d.Validate())

	t.Run("filter year keeps only matching snapshots", func(t *testing.T) {
		got := d.FilterYear(2026)
		require.Equal(t, 2, got.Len())
		assert.Equal(t, []float64{30, 40}, got.ByBus["bus_1"])
		assert.Equal(t, []float64{3, 4}, got.ByBus["bus_2"])
	})

	t.Run("filter range is inclusive", func(t *testing.T) {
		got := d.FilterRange(base.Add(time.Hour), base.Add(2*time.Hour))
		require.Equal(t, 2, got.Len())
		assert.Equal(t, []float64{20, 30}, got.ByBus["bus_1"])
	})

	t.Run("total at sums across buses", func(t *testing.T) {
		assert.InDelta(t, 11.0, d.TotalAt(0), 1e-9)
	})
}

func TestDemandSeriesValidate(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects non-increasing timestamps", func(t *testing.T) {
		d := DemandSeries{
			Timestamps: []time.Time{ts, ts},
			ByBus:      map[string][]float64{"bus_1": {1, 2}},
		}
		assert.Error(t, d.Validate())
	})

	t.Run("rejects ragged bus columns", func(t *testing.T) {
		d := DemandSeries{
			Timestamps: []time.Time{ts, ts.Add(time.Hour)},
			ByBus:      map[string][]float64{"bus_1": {1}},
		}
		assert.Error(t, d.Validate())
	})

	t.Run("rejects negative demand", func(t *testing.T) {
		d := DemandSeries{
			Timestamps: []time.Time{ts},
			ByBus:      map[string][]float64{"bus_1": {-1}},
		}
		assert.Error(t, d.Validate())
	})
}
