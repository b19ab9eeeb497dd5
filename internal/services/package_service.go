package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

var (
	ErrTierTaken       = errors.New("a package with this tier already exists for the event")
	ErrTooManyPackages = fmt.Errorf("an event can have at most %d packages", models.MaxPackagesPerEvent)
)

type PackageService struct {
	Repo   *repositories.PackageRepository
	Events *repositories.EventRepository
}

func NewPackageService(repo *repositories.PackageRepository, events *repositories.EventRepository) *PackageService {
	return &PackageService{Repo: repo, Events: events}
}

func validatePackage(p *models.Package) *ValidationError {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.BasePrice < 0 {
		errs = append(errs, "base price cannot be negative")
	}
	if !p.Tier.IsValid() {
		errs = append(errs, "unknown tier: "+string(p.Tier))
	}
	if p.Duration < 1 {
		errs = append(errs, "duration must be at least 1 day")
	}
	if p.MaxTravelers < 1 {
		errs = append(errs, "max travelers must be at least 1")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (s *PackageService) Create(p *models.Package) error {
	if p.Tier == "" {
		p.Tier = models.TierStandard
	}
	if verr := validatePackage(p); verr != nil {
		return verr
	}

	event, err := s.Events.GetByID(p.EventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrNotFound
	}

	count, err := s.Repo.CountByEvent(p.EventID)
	if err != nil {
		return err
	}
	if count >= models.MaxPackagesPerEvent {
		return ErrTooManyPackages
	}
	taken, err := s.Repo.TierTaken(p.EventID, p.Tier, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrTierTaken
	}

	if p.Inclusions == nil {
		p.Inclusions = []string{}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	return s.Repo.Create(p)
}

func (s *PackageService) GetByID(id int) (*models.Package, error) {
	pkg, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrNotFound
	}
	return pkg, nil
}

func (s *PackageService) List(eventID int) ([]models.Package, error) {
	if eventID > 0 {
		return s.Repo.ListByEvent(eventID)
	}
	return s.Repo.List()
}

func (s *PackageService) Update(p *models.Package) (*models.Package, error) {
	current, err := s.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	// The owning event never changes on update.
	p.EventID = current.EventID

	if verr := validatePackage(p); verr != nil {
		return nil, verr
	}
	taken, err := s.Repo.TierTaken(p.EventID, p.Tier, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTierTaken
	}
	if p.Inclusions == nil {
		p.Inclusions = current.Inclusions
	}
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return s.GetByID(p.ID)
}

func (s *PackageService) Delete(id int) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
