package repositories

import (
	"database/sql"
	"log"
	"time"

	"github.com/lib/pq"

	"sportstravel/internal/models"
)

const packageColumns = `id, event_id, name, description, base_price, inclusions, tier, duration, accommodation_type, max_travelers, created_at, updated_at`

type PackageRepository struct {
	db *sql.DB
}

func NewPackageRepository(db *sql.DB) *PackageRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &PackageRepository{db: db}
}

func scanPackage(row rowScanner) (*models.Package, error) {
	p := &models.Package{}
	err := row.Scan(
		&p.ID, &p.EventID, &p.Name, &p.Description, &p.BasePrice,
		pq.Array(&p.Inclusions), &p.Tier, &p.Duration,
		&p.AccommodationType, &p.MaxTravelers, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PackageRepository) Create(p *models.Package) error {
	const query = `
		INSERT INTO packages (event_id, name, description, base_price, inclusions, tier, duration, accommodation_type, max_travelers, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`
	return r.db.QueryRow(query,
		p.EventID, p.Name, p.Description, p.BasePrice, pq.Array(p.Inclusions),
		p.Tier, p.Duration, p.AccommodationType, p.MaxTravelers, p.CreatedAt,
	).Scan(&p.ID)
}

func (r *PackageRepository) GetByID(id int) (*models.Package, error) {
	pkg, err := scanPackage(r.db.QueryRow(`SELECT `+packageColumns+` FROM packages WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return pkg, err
}

func (r *PackageRepository) Update(p *models.Package) error {
	const query = `
		UPDATE packages
		SET name=$1, description=$2, base_price=$3, inclusions=$4, tier=$5,
		    duration=$6, accommodation_type=$7, max_travelers=$8, updated_at=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(query,
		p.Name, p.Description, p.BasePrice, pq.Array(p.Inclusions), p.Tier,
		p.Duration, p.AccommodationType, p.MaxTravelers, time.Now(), p.ID,
	)
	return err
}

func (r *PackageRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM packages WHERE id=$1`, id)
	return err
}

func (r *PackageRepository) List() ([]models.Package, error) {
	return r.queryPackages(`SELECT ` + packageColumns + ` FROM packages ORDER BY created_at DESC`)
}

func (r *PackageRepository) ListByEvent(eventID int) ([]models.Package, error) {
	return r.queryPackages(`SELECT `+packageColumns+` FROM packages WHERE event_id=$1 ORDER BY base_price DESC`, eventID)
}

func (r *PackageRepository) queryPackages(query string, args ...interface{}) ([]models.Package, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PackageRepository) CountByEvent(eventID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM packages WHERE event_id=$1`, eventID).Scan(&count)
	return count, err
}

// TierTaken reports whether another package of the same event already holds
// the tier. excludeID skips the package being updated.
func (r *PackageRepository) TierTaken(eventID int, tier models.PackageTier, excludeID int) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM packages WHERE event_id=$1 AND tier=$2 AND id<>$3`,
		eventID, tier, excludeID,
	).Scan(&count)
	return count > 0, err
}

func (r *PackageRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM packages`).Scan(&count)
	return count, err
}
