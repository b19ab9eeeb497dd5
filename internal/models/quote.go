package models

import (
	"time"

	"sportstravel/internal/pricing"
)

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "Draft"
	QuoteStatusSent     QuoteStatus = "Sent"
	QuoteStatusAccepted QuoteStatus = "Accepted"
	QuoteStatusRejected QuoteStatus = "Rejected"
)

func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

// QuoteValidity is how long a generated quote stays valid.
const QuoteValidity = 30 * 24 * time.Hour

// Quote is an immutable price snapshot. BasePrice and the breakdown are
// copied from the package and calculator at generation time; later status
// changes never recompute them.
type Quote struct {
	ID                int                 `json:"id"`
	LeadID            int                 `json:"lead_id"`
	EventID           int                 `json:"event_id"`
	PackageID         int                 `json:"package_id"`
	BasePrice         float64             `json:"base_price"`
	Adjustments       pricing.Adjustments `json:"adjustments"`
	FinalPrice        float64             `json:"final_price"`
	NumberOfTravelers int                 `json:"number_of_travelers"`
	TravelDate        time.Time           `json:"travel_date"`
	ValidUntil        time.Time           `json:"valid_until"`
	Status            QuoteStatus         `json:"status"`
	CreatedAt         time.Time           `json:"created_at"`
}
