package models

import (
	"time"
)

// ChangedBySystem marks transitions triggered by workflows rather than a user.
const ChangedBySystem = "system"

// LeadStatusHistory is an append-only audit record. One row per transition;
// the first row for a lead is the New -> New "Lead created" seed entry.
type LeadStatusHistory struct {
	ID         int        `json:"id"`
	LeadID     int        `json:"lead_id"`
	FromStatus LeadStatus `json:"from_status"`
	ToStatus   LeadStatus `json:"to_status"`
	ChangedBy  string     `json:"changed_by"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}
