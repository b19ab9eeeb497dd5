package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"sportstravel/internal/models"
)

const leadColumns = `id, name, email, phone, event_id, package_id, number_of_travelers, travel_date, status, notes, created_at, updated_at`

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*models.Lead, error) {
	lead := &models.Lead{}
	var packageID sql.NullInt64
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone,
		&lead.EventID, &packageID, &lead.NumberOfTravelers,
		&lead.TravelDate, &lead.Status, &lead.Notes,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if packageID.Valid {
		id := int(packageID.Int64)
		lead.PackageID = &id
	}
	return lead, nil
}

func nullablePackageID(lead *models.Lead) interface{} {
	if lead.PackageID == nil {
		return nil
	}
	return *lead.PackageID
}

// CreateTx inserts the lead and fills in its generated id. Runs inside the
// caller's transaction so the history seed lands atomically with it.
func (r *LeadRepository) CreateTx(tx *sql.Tx, lead *models.Lead) error {
	const query = `
		INSERT INTO leads (name, email, phone, event_id, package_id, number_of_travelers, travel_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`
	return tx.QueryRow(query,
		lead.Name, lead.Email, lead.Phone, lead.EventID, nullablePackageID(lead),
		lead.NumberOfTravelers, lead.TravelDate, lead.Status, lead.Notes, lead.CreatedAt,
	).Scan(&lead.ID)
}

func (r *LeadRepository) GetByID(id int) (*models.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE id=$1`, leadColumns)
	lead, err := scanLead(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return lead, err
}

// Update writes the editable contact fields. Status is deliberately not
// touched here; only UpdateStatusTx may change it.
func (r *LeadRepository) Update(lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET name=$1, email=$2, phone=$3, event_id=$4, package_id=$5,
		    number_of_travelers=$6, travel_date=$7, notes=$8, updated_at=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(query,
		lead.Name, lead.Email, lead.Phone, lead.EventID, nullablePackageID(lead),
		lead.NumberOfTravelers, lead.TravelDate, lead.Notes, time.Now(), lead.ID,
	)
	return err
}

// UpdateStatusTx performs a compare-and-swap on the status column. Returns
// false when the row no longer carries the expected status, which means a
// concurrent transition won the race.
func (r *LeadRepository) UpdateStatusTx(tx *sql.Tx, id int, from, to models.LeadStatus) (bool, error) {
	const query = `UPDATE leads SET status=$1, updated_at=$2 WHERE id=$3 AND status=$4`
	res, err := tx.Exec(query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *LeadRepository) UpdatePackage(id, packageID int) error {
	const query = `UPDATE leads SET package_id=$1, updated_at=$2 WHERE id=$3`
	_, err := r.db.Exec(query, packageID, time.Now(), id)
	return err
}

func (r *LeadRepository) DeleteTx(tx *sql.Tx, id int) error {
	_, err := tx.Exec(`DELETE FROM leads WHERE id=$1`, id)
	return err
}

// LeadFilter narrows Filter/CountFiltered. Month filters on the travel date
// within the current year, matching the original list endpoint.
type LeadFilter struct {
	Status  models.LeadStatus
	EventID int
	Month   time.Month
}

func (f LeadFilter) where() (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	i := 1

	if f.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, f.Status)
		i++
	}
	if f.EventID > 0 {
		clause += fmt.Sprintf(" AND event_id = $%d", i)
		args = append(args, f.EventID)
		i++
	}
	if f.Month > 0 {
		year := time.Now().Year()
		start := time.Date(year, f.Month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		clause += fmt.Sprintf(" AND travel_date >= $%d AND travel_date < $%d", i, i+1)
		args = append(args, start, end)
	}
	return clause, args
}

func (r *LeadRepository) Filter(f LeadFilter, limit, offset int) ([]models.Lead, error) {
	clause, args := f.where()
	query := fmt.Sprintf(`SELECT %s FROM leads%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		leadColumns, clause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, rows.Err()
}

func (r *LeadRepository) CountFiltered(f LeadFilter) (int, error) {
	clause, args := f.where()
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads`+clause, args...).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountLeads() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&count)
	return count, err
}

func (r *LeadRepository) CountByStatus() (map[models.LeadStatus]int, error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[models.LeadStatus]int{}
	for rows.Next() {
		var status models.LeadStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (r *LeadRepository) CountCreatedBetween(from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM leads WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&count)
	return count, err
}

func (r *LeadRepository) ListRecent(limit int) ([]models.Lead, error) {
	return r.Filter(LeadFilter{}, limit, 0)
}
