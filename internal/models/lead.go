package models

import (
	"time"
)

// LeadStatus is the closed set of funnel states. Every status write goes
// through the lifecycle service; nothing else may mutate it.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "New"
	LeadStatusContacted  LeadStatus = "Contacted"
	LeadStatusQuoteSent  LeadStatus = "Quote Sent"
	LeadStatusInterested LeadStatus = "Interested"
	LeadStatusClosedWon  LeadStatus = "Closed Won"
	LeadStatusClosedLost LeadStatus = "Closed Lost"
)

// IsValid reports whether s is one of the six defined states.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQuoteSent,
		LeadStatusInterested, LeadStatusClosedWon, LeadStatusClosedLost:
		return true
	}
	return false
}

// IsTerminal reports whether the status has no outbound transitions.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusClosedWon || s == LeadStatusClosedLost
}

type Lead struct {
	ID                int        `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	EventID           int        `json:"event_id"`
	PackageID         *int       `json:"package_id,omitempty"`
	NumberOfTravelers int        `json:"number_of_travelers"`
	TravelDate        time.Time  `json:"travel_date"`
	Status            LeadStatus `json:"status"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
