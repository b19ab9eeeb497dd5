package repositories

import (
	"database/sql"
	"log"

	"sportstravel/internal/models"
)

type LeadStatusHistoryRepository struct {
	db *sql.DB
}

func NewLeadStatusHistoryRepository(db *sql.DB) *LeadStatusHistoryRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadStatusHistoryRepository{db: db}
}

// CreateTx appends one audit row inside the caller's transaction, so the
// status write and its record commit or roll back together.
func (r *LeadStatusHistoryRepository) CreateTx(tx *sql.Tx, h *models.LeadStatusHistory) error {
	const query = `
		INSERT INTO lead_status_history (lead_id, from_status, to_status, changed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return tx.QueryRow(query,
		h.LeadID, h.FromStatus, h.ToStatus, h.ChangedBy, h.Notes, h.CreatedAt,
	).Scan(&h.ID)
}

func (r *LeadStatusHistoryRepository) ListByLead(leadID int) ([]models.LeadStatusHistory, error) {
	const query = `
		SELECT id, lead_id, from_status, to_status, changed_by, notes, created_at
		FROM lead_status_history
		WHERE lead_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.LeadStatusHistory
	for rows.Next() {
		var h models.LeadStatusHistory
		if err := rows.Scan(&h.ID, &h.LeadID, &h.FromStatus, &h.ToStatus, &h.ChangedBy, &h.Notes, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteByLeadTx removes a lead's audit trail; only the admin lead delete
// cascade calls this.
func (r *LeadStatusHistoryRepository) DeleteByLeadTx(tx *sql.Tx, leadID int) error {
	_, err := tx.Exec(`DELETE FROM lead_status_history WHERE lead_id=$1`, leadID)
	return err
}
