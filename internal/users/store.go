package users

import (
	"errors"
	"strings"

	"github.com/pizzaria-dev/pizzaria/internal/auth"
	"github.com/pizzaria-dev/pizzaria/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateEmail = errors.New("email already exists")

// dummyHash is compared against when the email is unknown so that a failed
// login costs the same whether the account exists or not.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Store is the credential store: it owns user records and password checks.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindByEmail returns the user with the given email, or nil when absent.
func (s *Store) FindByEmail(email string) (*models.User, error) {
	var user models.User

	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// Create registers a new user. The plaintext password is hashed before
// anything is persisted and is never stored or logged.
func (s *Store) Create(name, email, password string, active, admin bool) (*models.User, error) {
	email = normalizeEmail(email)

	existing, err := s.FindByEmail(email)

	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	passwordHash, err := auth.HashPassword(password)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Active:       active,
		Admin:        admin,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password both return nil, nil so callers cannot tell the cases apart.
func (s *Store) Authenticate(email, password string) (*models.User, error) {
	user, err := s.FindByEmail(email)

	if err != nil {
		return nil, err
	}

	if user == nil {
		auth.CheckPassword(dummyHash, password)
		return nil, nil
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
