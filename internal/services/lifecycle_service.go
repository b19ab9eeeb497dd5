package services

import (
	"database/sql"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

// LifecycleService is the single writer for lead statuses. Every status
// change runs through Transition, which validates the move against the
// transition table and appends exactly one history row, both inside one
// database transaction.
type LifecycleService struct {
	db          *sql.DB
	LeadRepo    *repositories.LeadRepository
	HistoryRepo *repositories.LeadStatusHistoryRepository
}

func NewLifecycleService(db *sql.DB, leadRepo *repositories.LeadRepository, historyRepo *repositories.LeadStatusHistoryRepository) *LifecycleService {
	return &LifecycleService{db: db, LeadRepo: leadRepo, HistoryRepo: historyRepo}
}

// Transition moves the lead to the given status.
//
// privileged is the escape hatch for system-initiated moves (quote generated,
// quote accepted/rejected): it skips the table check but still records
// history. User-initiated calls must pass false.
//
// The status update is a compare-and-swap against the status read here; when
// a concurrent transition wins the race the swap affects no rows and the call
// fails with ErrInvalidTransition, leaving no history row behind.
func (s *LifecycleService) Transition(leadID int, to models.LeadStatus, note, changedBy string, privileged bool) (*models.Lead, error) {
	if !to.IsValid() {
		return nil, &ValidationError{Errors: []string{"unknown lead status: " + string(to)}}
	}

	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrNotFound
	}

	if !privileged && !CanTransition(lead.Status, to) {
		return nil, invalidTransition(lead.Status, to)
	}

	if changedBy == "" {
		changedBy = models.ChangedBySystem
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	swapped, err := s.LeadRepo.UpdateStatusTx(tx, leadID, lead.Status, to)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !swapped {
		tx.Rollback()
		return nil, invalidTransition(lead.Status, to)
	}

	entry := &models.LeadStatusHistory{
		LeadID:     leadID,
		FromStatus: lead.Status,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Notes:      note,
		CreatedAt:  time.Now(),
	}
	if err := s.HistoryRepo.CreateTx(tx, entry); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	lead.Status = to
	return lead, nil
}

// CreateWithSeed inserts a new lead together with its New -> New seed history
// entry. The seed is not a real transition; it only starts the audit trail.
func (s *LifecycleService) CreateWithSeed(lead *models.Lead) error {
	lead.Status = models.LeadStatusNew
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	lead.UpdatedAt = lead.CreatedAt

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := s.LeadRepo.CreateTx(tx, lead); err != nil {
		tx.Rollback()
		return err
	}

	seed := &models.LeadStatusHistory{
		LeadID:     lead.ID,
		FromStatus: models.LeadStatusNew,
		ToStatus:   models.LeadStatusNew,
		ChangedBy:  models.ChangedBySystem,
		Notes:      "Lead created",
		CreatedAt:  lead.CreatedAt,
	}
	if err := s.HistoryRepo.CreateTx(tx, seed); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Delete removes the lead and its history in one transaction.
func (s *LifecycleService) Delete(leadID int) error {
	lead, err := s.LeadRepo.GetByID(leadID)
	if err != nil {
		return err
	}
	if lead == nil {
		return ErrNotFound
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := s.HistoryRepo.DeleteByLeadTx(tx, leadID); err != nil {
		tx.Rollback()
		return err
	}
	if err := s.LeadRepo.DeleteTx(tx, leadID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
