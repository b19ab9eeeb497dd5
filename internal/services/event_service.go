package services

import (
	"strings"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

type EventService struct {
	Repo *repositories.EventRepository
}

func NewEventService(repo *repositories.EventRepository) *EventService {
	return &EventService{Repo: repo}
}

func validateEvent(e *models.Event) *ValidationError {
	var errs []string
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(e.Location) == "" {
		errs = append(errs, "location is required")
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		errs = append(errs, "start and end dates are required")
	} else if e.EndDate.Before(e.StartDate) {
		errs = append(errs, "end date must be greater than or equal to start date")
	}
	if e.Category != "" && !e.Category.IsValid() {
		errs = append(errs, "unknown category: "+string(e.Category))
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (s *EventService) Create(e *models.Event) error {
	if e.Category == "" {
		e.Category = models.CategoryOther
	}
	if verr := validateEvent(e); verr != nil {
		return verr
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return s.Repo.Create(e)
}

func (s *EventService) GetByID(id int) (*models.Event, error) {
	event, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func (s *EventService) List() ([]models.Event, error) {
	return s.Repo.List()
}

func (s *EventService) Update(e *models.Event) (*models.Event, error) {
	if _, err := s.GetByID(e.ID); err != nil {
		return nil, err
	}
	if verr := validateEvent(e); verr != nil {
		return nil, verr
	}
	if err := s.Repo.Update(e); err != nil {
		return nil, err
	}
	return s.GetByID(e.ID)
}

func (s *EventService) Delete(id int) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
