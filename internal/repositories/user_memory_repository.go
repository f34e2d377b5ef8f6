package repositories

import (
	"sync"

	"profilehub/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Accounts live for the lifetime of the process and IDs are dense,
// starting at 1 and never reused.
type MemoryUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// Create adds a new account, assigning the next ID. The duplicate-email
// check and the ID assignment happen under the same lock, so two concurrent
// registrations with the same email cannot both succeed.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == user.Email {
			return ErrEmailTaken
		}
	}

	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

// GetByEmail returns a copy of the account with the given email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID returns a copy of the account with the given ID.
func (r *MemoryUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetAll returns all accounts in insertion order.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, len(r.users))
	copy(users, r.users)
	return users, nil
}

// Update replaces the stored account with the same ID.
func (r *MemoryUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return ErrUserNotFound
}
