package services

import (
	"errors"
	"strings"
	"time"

	"sportstravel/internal/authz"
	"sportstravel/internal/models"
	"sportstravel/internal/repositories"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
)

type UserService struct {
	Repo *repositories.UserRepository
	Auth AuthService
}

func NewUserService(repo *repositories.UserRepository, auth AuthService) *UserService {
	return &UserService{Repo: repo, Auth: auth}
}

func (s *UserService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	var errs []string
	if name == "" {
		errs = append(errs, "name is required")
	}
	if !emailRe.MatchString(email) {
		errs = append(errs, "valid email is required")
	}
	if len(password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.Auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		RoleID:       authz.RoleAgent,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token for the user.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	user, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if user == nil || !s.Auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrAccountInactive
	}

	token, err := s.Auth.GenerateToken(user.ID, user.RoleID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
