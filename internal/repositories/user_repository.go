package repositories

import (
	"errors"

	"profilehub/internal/models"
)

var (
	// ErrUserNotFound is returned by lookups that match no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Create when the email is already registered.
	ErrEmailTaken = errors.New("user with this email already exists")
)

// UserRepository defines the interface for account data access.
//
// Create assigns the next ID and enforces email uniqueness. GetAll returns
// accounts in insertion order. Implementations must be safe for concurrent
// handlers; lookups return copies, and field changes go through Update.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
}
