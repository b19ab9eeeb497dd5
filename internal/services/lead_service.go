package services

import (
	"regexp"
	"strings"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

type LeadService struct {
	Repo      *repositories.LeadRepository
	History   *repositories.LeadStatusHistoryRepository
	Lifecycle *LifecycleService
}

func NewLeadService(repo *repositories.LeadRepository, history *repositories.LeadStatusHistoryRepository, lifecycle *LifecycleService) *LeadService {
	return &LeadService{Repo: repo, History: history, Lifecycle: lifecycle}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// ValidateLead checks an inbound lead submission. Mirrors the boundary rules:
// shape problems are rejected here, not deep in the workflows.
func ValidateLead(lead *models.Lead) *ValidationError {
	var errs []string

	if len(strings.TrimSpace(lead.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}
	if !emailRe.MatchString(lead.Email) {
		errs = append(errs, "valid email is required")
	}
	if lead.Phone == "" || !phoneRe.MatchString(lead.Phone) {
		errs = append(errs, "valid phone number is required")
	}
	if lead.EventID <= 0 {
		errs = append(errs, "event id is required")
	}
	if lead.NumberOfTravelers < 1 {
		errs = append(errs, "number of travelers must be at least 1")
	}
	if lead.TravelDate.IsZero() || lead.TravelDate.Before(time.Now()) {
		errs = append(errs, "travel date must be in the future")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Create validates and stores a new lead; status always starts at New with a
// seeded history entry.
func (s *LeadService) Create(lead *models.Lead) error {
	if verr := ValidateLead(lead); verr != nil {
		return verr
	}
	lead.Email = strings.ToLower(strings.TrimSpace(lead.Email))
	lead.Name = strings.TrimSpace(lead.Name)
	return s.Lifecycle.CreateWithSeed(lead)
}

func (s *LeadService) GetByID(id int) (*models.Lead, error) {
	lead, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	return lead, nil
}

func (s *LeadService) GetHistory(leadID int) ([]models.LeadStatusHistory, error) {
	if _, err := s.GetByID(leadID); err != nil {
		return nil, err
	}
	return s.History.ListByLead(leadID)
}

func (s *LeadService) List(filter repositories.LeadFilter, limit, offset int) ([]models.Lead, int, error) {
	leads, err := s.Repo.Filter(filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountFiltered(filter)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// Update edits contact fields only; status changes must go through
// UpdateStatus so they are validated and audited.
func (s *LeadService) Update(lead *models.Lead) (*models.Lead, error) {
	current, err := s.GetByID(lead.ID)
	if err != nil {
		return nil, err
	}
	lead.Status = current.Status
	if verr := ValidateLead(lead); verr != nil {
		return nil, verr
	}
	if err := s.Repo.Update(lead); err != nil {
		return nil, err
	}
	return s.GetByID(lead.ID)
}

// UpdateStatus applies a user-initiated transition.
func (s *LeadService) UpdateStatus(id int, to models.LeadStatus, note, changedBy string) (*models.Lead, error) {
	return s.Lifecycle.Transition(id, to, note, changedBy, false)
}

// Delete removes the lead and cascades to its status history.
func (s *LeadService) Delete(id int) error {
	return s.Lifecycle.Delete(id)
}
