package services

import (
	"fmt"
	"log"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/pricing"
	"sportstravel/internal/repositories"
)

type QuoteService struct {
	Quotes    *repositories.QuoteRepository
	Leads     *repositories.LeadRepository
	Events    *repositories.EventRepository
	Packages  *repositories.PackageRepository
	Lifecycle *LifecycleService
	Email     EmailService
}

func NewQuoteService(
	quotes *repositories.QuoteRepository,
	leads *repositories.LeadRepository,
	events *repositories.EventRepository,
	packages *repositories.PackageRepository,
	lifecycle *LifecycleService,
	email EmailService,
) *QuoteService {
	return &QuoteService{
		Quotes:    quotes,
		Leads:     leads,
		Events:    events,
		Packages:  packages,
		Lifecycle: lifecycle,
		Email:     email,
	}
}

// GenerateQuoteInput: everything except LeadID may be omitted and is then
// filled from the lead record.
type GenerateQuoteInput struct {
	LeadID            int
	EventID           int
	PackageID         int
	NumberOfTravelers int
	TravelDate        time.Time
}

type GenerateQuoteResult struct {
	QuoteID     int                 `json:"quote_id"`
	BasePrice   float64             `json:"base_price"`
	Adjustments pricing.Adjustments `json:"adjustments"`
	FinalPrice  float64             `json:"final_price"`
	LeadStatus  models.LeadStatus   `json:"lead_status"`
}

// Generate prices and persists a quote, then drives the lead to Quote Sent
// through the privileged lifecycle path and fires the notification email.
// An email failure is logged and swallowed: the quote and the transition
// stand regardless.
func (s *QuoteService) Generate(in GenerateQuoteInput) (*GenerateQuoteResult, error) {
	lead, err := s.Leads.GetByID(in.LeadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}

	// Fallback fill from the lead's own stored fields.
	if in.EventID == 0 {
		in.EventID = lead.EventID
	}
	if in.PackageID == 0 && lead.PackageID != nil {
		in.PackageID = *lead.PackageID
	}
	if in.NumberOfTravelers == 0 {
		in.NumberOfTravelers = lead.NumberOfTravelers
	}
	if in.TravelDate.IsZero() {
		in.TravelDate = lead.TravelDate
	}
	if in.EventID == 0 || in.PackageID == 0 || in.NumberOfTravelers == 0 || in.TravelDate.IsZero() {
		return nil, ErrMissingData
	}
	if in.NumberOfTravelers < 1 {
		return nil, &ValidationError{Errors: []string{"number of travelers must be at least 1"}}
	}

	event, err := s.Events.GetByID(in.EventID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.Packages.GetByID(in.PackageID)
	if err != nil {
		return nil, err
	}
	if event == nil || pkg == nil {
		return nil, ErrNotFound
	}

	result := pricing.Calculate(pkg.BasePrice, in.TravelDate, event.StartDate, in.NumberOfTravelers)

	now := time.Now()
	quote := &models.Quote{
		LeadID:            lead.ID,
		EventID:           event.ID,
		PackageID:         pkg.ID,
		BasePrice:         result.BasePrice,
		Adjustments:       result.Adjustments,
		FinalPrice:        result.FinalPrice,
		NumberOfTravelers: in.NumberOfTravelers,
		TravelDate:        in.TravelDate,
		ValidUntil:        now.Add(models.QuoteValidity),
		Status:            models.QuoteStatusSent,
		CreatedAt:         now,
	}
	if err := s.Quotes.Create(quote); err != nil {
		return nil, err
	}

	if lead.PackageID == nil || *lead.PackageID != pkg.ID {
		if err := s.Leads.UpdatePackage(lead.ID, pkg.ID); err != nil {
			log.Printf("quote %d: failed to pin package on lead %d: %v", quote.ID, lead.ID, err)
		}
	}

	updated, err := s.Lifecycle.Transition(
		lead.ID, models.LeadStatusQuoteSent,
		fmt.Sprintf("Quote generated: %d", quote.ID),
		models.ChangedBySystem, true,
	)
	if err != nil {
		return nil, err
	}

	if err := s.Email.SendQuoteEmail(updated, quote, event, pkg); err != nil {
		// Availability over completeness: the quote stands even when the
		// notification does not go out.
		log.Printf("quote %d: failed to send quote email to %s: %v", quote.ID, updated.Email, err)
	}

	return &GenerateQuoteResult{
		QuoteID:     quote.ID,
		BasePrice:   quote.BasePrice,
		Adjustments: quote.Adjustments,
		FinalPrice:  quote.FinalPrice,
		LeadStatus:  updated.Status,
	}, nil
}

func (s *QuoteService) GetByID(id int) (*models.Quote, error) {
	quote, err := s.Quotes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, ErrNotFound
	}
	return quote, nil
}

func (s *QuoteService) ListByLead(leadID int) ([]models.Quote, error) {
	return s.Quotes.ListByLead(leadID)
}

// UpdateStatus changes the quote status and cascades into the lead funnel:
// Accepted closes the lead as won, Rejected closes it as lost unless the
// lead is already won. Prices are never recomputed.
func (s *QuoteService) UpdateStatus(id int, to models.QuoteStatus) (*models.Quote, error) {
	if !to.IsValid() {
		return nil, &ValidationError{Errors: []string{"unknown quote status: " + string(to)}}
	}

	quote, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.Quotes.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	quote.Status = to

	switch to {
	case models.QuoteStatusAccepted:
		err = s.cascadeLead(quote, models.LeadStatusClosedWon, fmt.Sprintf("Quote %d accepted", quote.ID))
	case models.QuoteStatusRejected:
		err = s.cascadeLead(quote, models.LeadStatusClosedLost, fmt.Sprintf("Quote %d rejected", quote.ID))
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *QuoteService) cascadeLead(quote *models.Quote, to models.LeadStatus, note string) error {
	lead, err := s.Leads.GetByID(quote.LeadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return nil
	}
	// Never downgrade a won deal, and skip no-op moves.
	if lead.Status == models.LeadStatusClosedWon || lead.Status == to {
		return nil
	}
	_, err = s.Lifecycle.Transition(lead.ID, to, note, models.ChangedBySystem, true)
	return err
}

// UpdateValidUntil is the only plain quote field update; it has no cascading
// effects.
func (s *QuoteService) UpdateValidUntil(id int, validUntil time.Time) (*models.Quote, error) {
	quote, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Quotes.UpdateValidUntil(id, validUntil); err != nil {
		return nil, err
	}
	quote.ValidUntil = validUntil
	return quote, nil
}
