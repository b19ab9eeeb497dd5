package models

import (
	"time"
)

type EventCategory string

const (
	CategoryCricket  EventCategory = "Cricket"
	CategoryFootball EventCategory = "Football"
	CategoryTennis   EventCategory = "Tennis"
	CategoryF1       EventCategory = "F1"
	CategoryOther    EventCategory = "Other"
)

func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryCricket, CategoryFootball, CategoryTennis, CategoryF1, CategoryOther:
		return true
	}
	return false
}

type Event struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Location    string        `json:"location"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	ImageURL    string        `json:"image_url"`
	Category    EventCategory `json:"category"`
	Featured    bool          `json:"featured"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
