package models

import (
	"time"
)

type PackageTier string

const (
	TierPremium  PackageTier = "Premium"
	TierStandard PackageTier = "Standard"
	TierBasic    PackageTier = "Basic"
	TierEconomy  PackageTier = "Economy"
)

func (t PackageTier) IsValid() bool {
	switch t {
	case TierPremium, TierStandard, TierBasic, TierEconomy:
		return true
	}
	return false
}

// MaxPackagesPerEvent caps the catalog at one package per tier.
const MaxPackagesPerEvent = 4

// Package is a priced offering for a single event.
type Package struct {
	ID                int         `json:"id"`
	EventID           int         `json:"event_id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	BasePrice         float64     `json:"base_price"`
	Inclusions        []string    `json:"inclusions"`
	Tier              PackageTier `json:"tier"`
	Duration          int         `json:"duration"` // days
	AccommodationType string      `json:"accommodation_type"`
	MaxTravelers      int         `json:"max_travelers"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
