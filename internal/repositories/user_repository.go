package repositories

import (
	"database/sql"
	"log"

	"sportstravel/internal/models"
)

const userColumns = `id, name, email, password_hash, role_id, is_active, created_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &UserRepository{db: db}
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *models.User) error {
	const query = `
		INSERT INTO users (name, email, password_hash, role_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.db.QueryRow(query, u.Name, u.Email, u.PasswordHash, u.RoleID, u.IsActive, u.CreatedAt).Scan(&u.ID)
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *UserRepository) GetByID(id int) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}
