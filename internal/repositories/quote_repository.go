package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sportstravel/internal/models"
	"sportstravel/internal/pricing"
)

const quoteColumns = `id, lead_id, event_id, package_id, base_price, adjustments, final_price, number_of_travelers, travel_date, valid_until, status, created_at`

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &QuoteRepository{db: db}
}

// The breakdown is stored as a jsonb column; the five keys are fixed so the
// shape round-trips losslessly.
func scanQuote(row rowScanner) (*models.Quote, error) {
	q := &models.Quote{}
	var adjustments []byte
	err := row.Scan(
		&q.ID, &q.LeadID, &q.EventID, &q.PackageID, &q.BasePrice,
		&adjustments, &q.FinalPrice, &q.NumberOfTravelers,
		&q.TravelDate, &q.ValidUntil, &q.Status, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(adjustments, &q.Adjustments); err != nil {
		return nil, err
	}
	return q, nil
}

func marshalAdjustments(a pricing.Adjustments) ([]byte, error) {
	return json.Marshal(a)
}

func (r *QuoteRepository) Create(q *models.Quote) error {
	adjustments, err := marshalAdjustments(q.Adjustments)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO quotes (lead_id, event_id, package_id, base_price, adjustments, final_price, number_of_travelers, travel_date, valid_until, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRow(query,
		q.LeadID, q.EventID, q.PackageID, q.BasePrice, adjustments,
		q.FinalPrice, q.NumberOfTravelers, q.TravelDate, q.ValidUntil,
		q.Status, q.CreatedAt,
	).Scan(&q.ID)
}

func (r *QuoteRepository) GetByID(id int) (*models.Quote, error) {
	quote, err := scanQuote(r.db.QueryRow(`SELECT `+quoteColumns+` FROM quotes WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return quote, err
}

func (r *QuoteRepository) ListByLead(leadID int) ([]models.Quote, error) {
	return r.queryQuotes(`SELECT `+quoteColumns+` FROM quotes WHERE lead_id=$1 ORDER BY created_at DESC`, leadID)
}

func (r *QuoteRepository) ListRecent(limit int) ([]models.Quote, error) {
	return r.queryQuotes(`SELECT `+quoteColumns+` FROM quotes ORDER BY created_at DESC LIMIT $1`, limit)
}

func (r *QuoteRepository) queryQuotes(query string, args ...interface{}) ([]models.Quote, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// UpdateStatus changes only the status column. Price fields stay frozen.
func (r *QuoteRepository) UpdateStatus(id int, status models.QuoteStatus) error {
	_, err := r.db.Exec(`UPDATE quotes SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *QuoteRepository) UpdateValidUntil(id int, validUntil time.Time) error {
	_, err := r.db.Exec(`UPDATE quotes SET valid_until=$1 WHERE id=$2`, validUntil, id)
	return err
}

func (r *QuoteRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&count)
	return count, err
}

// SumByStatuses returns the total final price and row count across the given
// quote statuses; used by the revenue report.
func (r *QuoteRepository) SumByStatuses(statuses ...models.QuoteStatus) (float64, int, error) {
	args := make([]interface{}, len(statuses))
	placeholders := ""
	for i, s := range statuses {
		if i > 0 {
			placeholders += ","
		}
		placeholders += fmt.Sprintf("$%d", i+1)
		args[i] = s
	}
	var sum sql.NullFloat64
	var count int
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(final_price), 0), COUNT(*) FROM quotes WHERE status IN (`+placeholders+`)`,
		args...,
	).Scan(&sum, &count)
	return sum.Float64, count, err
}
