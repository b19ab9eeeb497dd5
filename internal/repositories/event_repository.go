package repositories

import (
	"database/sql"
	"log"
	"time"

	"sportstravel/internal/models"
)

const eventColumns = `id, name, description, location, start_date, end_date, image_url, category, featured, created_at, updated_at`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &EventRepository{db: db}
}

func scanEvent(row rowScanner) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.Location,
		&e.StartDate, &e.EndDate, &e.ImageURL, &e.Category,
		&e.Featured, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) Create(e *models.Event) error {
	const query = `
		INSERT INTO events (name, description, location, start_date, end_date, image_url, category, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`
	return r.db.QueryRow(query,
		e.Name, e.Description, e.Location, e.StartDate, e.EndDate,
		e.ImageURL, e.Category, e.Featured, e.CreatedAt,
	).Scan(&e.ID)
}

func (r *EventRepository) GetByID(id int) (*models.Event, error) {
	event, err := scanEvent(r.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

func (r *EventRepository) Update(e *models.Event) error {
	const query = `
		UPDATE events
		SET name=$1, description=$2, location=$3, start_date=$4, end_date=$5,
		    image_url=$6, category=$7, featured=$8, updated_at=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(query,
		e.Name, e.Description, e.Location, e.StartDate, e.EndDate,
		e.ImageURL, e.Category, e.Featured, time.Now(), e.ID,
	)
	return err
}

func (r *EventRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM events WHERE id=$1`, id)
	return err
}

// List returns all events, soonest first.
func (r *EventRepository) List() ([]models.Event, error) {
	rows, err := r.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY start_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&count)
	return count, err
}
