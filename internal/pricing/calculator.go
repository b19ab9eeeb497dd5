// Package pricing computes quote prices from a package base price and the
// booking context. It is purely functional: callers validate inputs
// (basePrice >= 0, travelers >= 1) before invoking.
package pricing

import (
	"math"
	"time"
)

// Adjustment is one named price adjustment. Value is the signed money amount,
// Percentage the rate it was derived from. Zero on both when the rule did not
// fire.
type Adjustment struct {
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// Adjustments always carries all five entries; no entry is ever omitted.
type Adjustments struct {
	SeasonalMultiplier  Adjustment `json:"seasonalMultiplier"`
	EarlyBirdDiscount   Adjustment `json:"earlyBirdDiscount"`
	LastMinuteSurcharge Adjustment `json:"lastMinuteSurcharge"`
	GroupDiscount       Adjustment `json:"groupDiscount"`
	WeekendSurcharge    Adjustment `json:"weekendSurcharge"`
}

// Result is the full price breakdown for a quote.
type Result struct {
	BasePrice   float64     `json:"basePrice"`
	Adjustments Adjustments `json:"adjustments"`
	FinalPrice  float64     `json:"finalPrice"`
}

// Rule rates, in percent of the base price.
const (
	highSeasonPct   = 20 // June, July, December
	midSeasonPct    = 10 // April, May, September
	earlyBirdPct    = 10
	lastMinutePct   = 25
	groupPct        = 8
	weekendPct      = 8
	earlyBirdDays   = 120
	lastMinuteDays  = 15
	minGroupSize    = 4
)

// Calculate evaluates the five adjustment rules independently against the
// unmodified base price; percentages never compound. Seasonal and weekend
// checks use the event start date, not the travel date.
func Calculate(basePrice float64, travelDate, eventStartDate time.Time, numberOfTravelers int) Result {
	adj := Adjustments{
		SeasonalMultiplier:  seasonalMultiplier(basePrice, eventStartDate),
		EarlyBirdDiscount:   earlyBirdDiscount(basePrice, travelDate, eventStartDate),
		LastMinuteSurcharge: lastMinuteSurcharge(basePrice, travelDate, eventStartDate),
		GroupDiscount:       groupDiscount(basePrice, numberOfTravelers),
		WeekendSurcharge:    weekendSurcharge(basePrice, eventStartDate),
	}

	total := basePrice +
		adj.SeasonalMultiplier.Value +
		adj.EarlyBirdDiscount.Value +
		adj.LastMinuteSurcharge.Value +
		adj.GroupDiscount.Value +
		adj.WeekendSurcharge.Value

	return Result{
		BasePrice:   basePrice,
		Adjustments: adj,
		FinalPrice:  round2(total),
	}
}

func seasonalMultiplier(basePrice float64, eventStart time.Time) Adjustment {
	var pct float64
	switch eventStart.Month() {
	case time.June, time.July, time.December:
		pct = highSeasonPct
	case time.April, time.May, time.September:
		pct = midSeasonPct
	}
	return Adjustment{Value: basePrice * pct / 100, Percentage: pct}
}

func earlyBirdDiscount(basePrice float64, travelDate, eventStart time.Time) Adjustment {
	if daysBetween(travelDate, eventStart) >= earlyBirdDays {
		return Adjustment{Value: -basePrice * earlyBirdPct / 100, Percentage: earlyBirdPct}
	}
	return Adjustment{}
}

func lastMinuteSurcharge(basePrice float64, travelDate, eventStart time.Time) Adjustment {
	if daysBetween(travelDate, eventStart) < lastMinuteDays {
		return Adjustment{Value: basePrice * lastMinutePct / 100, Percentage: lastMinutePct}
	}
	return Adjustment{}
}

func groupDiscount(basePrice float64, travelers int) Adjustment {
	if travelers >= minGroupSize {
		return Adjustment{Value: -basePrice * groupPct / 100, Percentage: groupPct}
	}
	return Adjustment{}
}

func weekendSurcharge(basePrice float64, eventStart time.Time) Adjustment {
	if wd := eventStart.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Adjustment{Value: basePrice * weekendPct / 100, Percentage: weekendPct}
	}
	return Adjustment{}
}

// daysBetween floors the gap to whole days. Negative when the travel date is
// after the event start, which makes the last-minute surcharge apply and the
// early-bird discount impossible.
func daysBetween(travelDate, eventStart time.Time) int {
	return int(math.Floor(eventStart.Sub(travelDate).Hours() / 24))
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
