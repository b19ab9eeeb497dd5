package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateHighSeasonWeekendGroup(t *testing.T) {
	// June event starting on a Saturday, 4 travelers, booked 25 days out:
	// +20% season, +8% weekend, -8% group, no early-bird, no last-minute.
	res := Calculate(1000, date(2025, time.May, 20), date(2025, time.June, 14), 4)

	assert.Equal(t, 1000.0, res.BasePrice)
	assert.Equal(t, 200.0, res.Adjustments.SeasonalMultiplier.Value)
	assert.Equal(t, 20.0, res.Adjustments.SeasonalMultiplier.Percentage)
	assert.Equal(t, 0.0, res.Adjustments.EarlyBirdDiscount.Value)
	assert.Equal(t, 0.0, res.Adjustments.LastMinuteSurcharge.Value)
	assert.Equal(t, -80.0, res.Adjustments.GroupDiscount.Value)
	assert.Equal(t, 80.0, res.Adjustments.WeekendSurcharge.Value)
	assert.Equal(t, 1200.0, res.FinalPrice)
}

func TestCalculateEarlyBirdCancelsMidSeason(t *testing.T) {
	// May event on a Friday, booked 149 days out, 2 travelers:
	// +10% season and -10% early-bird net out to the base price.
	res := Calculate(1000, date(2025, time.January, 1), date(2025, time.May, 30), 2)

	assert.Equal(t, 100.0, res.Adjustments.SeasonalMultiplier.Value)
	assert.Equal(t, -100.0, res.Adjustments.EarlyBirdDiscount.Value)
	assert.Equal(t, 0.0, res.Adjustments.GroupDiscount.Value)
	assert.Equal(t, 0.0, res.Adjustments.WeekendSurcharge.Value)
	assert.Equal(t, 1000.0, res.FinalPrice)
}

func TestCalculateNoRulesFire(t *testing.T) {
	// March event on a Wednesday, 30 days out, 2 travelers.
	res := Calculate(500, date(2025, time.February, 12), date(2025, time.March, 12), 2)

	assert.Equal(t, Adjustments{}, res.Adjustments)
	assert.Equal(t, 500.0, res.FinalPrice)
}

func TestCalculateAdjustmentsNeverCompound(t *testing.T) {
	// Every rule fires: June Saturday, booked 5 days out, 6 travelers.
	// All percentages apply to the unmodified base.
	res := Calculate(1000, date(2025, time.June, 9), date(2025, time.June, 14), 6)

	assert.Equal(t, 200.0, res.Adjustments.SeasonalMultiplier.Value)
	assert.Equal(t, 250.0, res.Adjustments.LastMinuteSurcharge.Value)
	assert.Equal(t, -80.0, res.Adjustments.GroupDiscount.Value)
	assert.Equal(t, 80.0, res.Adjustments.WeekendSurcharge.Value)
	assert.Equal(t, 1450.0, res.FinalPrice)
}

func TestCalculateBoundaries(t *testing.T) {
	travel := date(2025, time.January, 1)

	tests := []struct {
		name       string
		eventStart time.Time
		earlyBird  bool
		lastMinute bool
	}{
		{"exactly 120 days out gets early bird", travel.AddDate(0, 0, 120), true, false},
		{"119 days out gets neither", travel.AddDate(0, 0, 119), false, false},
		{"exactly 15 days out gets neither", travel.AddDate(0, 0, 15), false, false},
		{"14 days out gets last minute", travel.AddDate(0, 0, 14), false, true},
		{"same day gets last minute", travel, false, true},
		{"travel after event start gets last minute", travel.AddDate(0, 0, -3), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Calculate(1000, travel, tt.eventStart, 2)
			if tt.earlyBird {
				assert.Equal(t, -100.0, res.Adjustments.EarlyBirdDiscount.Value)
			} else {
				assert.Zero(t, res.Adjustments.EarlyBirdDiscount.Value)
			}
			if tt.lastMinute {
				assert.Equal(t, 250.0, res.Adjustments.LastMinuteSurcharge.Value)
			} else {
				assert.Zero(t, res.Adjustments.LastMinuteSurcharge.Value)
			}
		})
	}
}

func TestCalculateGroupThreshold(t *testing.T) {
	travel := date(2025, time.February, 1)
	event := date(2025, time.March, 11) // Tuesday, off season

	res := Calculate(1000, travel, event, 3)
	assert.Zero(t, res.Adjustments.GroupDiscount.Value)

	res = Calculate(1000, travel, event, 4)
	assert.Equal(t, -80.0, res.Adjustments.GroupDiscount.Value)
	assert.Equal(t, 8.0, res.Adjustments.GroupDiscount.Percentage)
}

func TestCalculateRoundsToTwoDecimals(t *testing.T) {
	// 333.33 + 20% = 399.996, which rounds up to 400.00.
	res := Calculate(333.33, date(2025, time.April, 1), date(2025, time.June, 16), 1)

	assert.Equal(t, 400.0, res.FinalPrice)
	// The raw adjustment keeps full precision; only the total is rounded.
	assert.InDelta(t, 66.666, res.Adjustments.SeasonalMultiplier.Value, 1e-9)
}

func TestCalculateDeterministic(t *testing.T) {
	travel := date(2025, time.May, 20)
	event := date(2025, time.June, 14)

	first := Calculate(1000, travel, event, 4)
	second := Calculate(1000, travel, event, 4)
	assert.Equal(t, first, second)
}

func TestCalculateZeroBasePrice(t *testing.T) {
	res := Calculate(0, date(2025, time.June, 1), date(2025, time.June, 14), 6)

	assert.Equal(t, 0.0, res.FinalPrice)
	// Percentages still report which rules fired.
	assert.Equal(t, 20.0, res.Adjustments.SeasonalMultiplier.Percentage)
	assert.Equal(t, 8.0, res.Adjustments.GroupDiscount.Percentage)
}
