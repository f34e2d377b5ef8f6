package services

import (
	"profilehub/internal/models"
	"profilehub/internal/repositories"
)

// DirectoryService serves the read side: profile listings filtered by the
// caller's capability and the per-account visibility flag.
type DirectoryService struct {
	userRepo repositories.UserRepository
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(userRepo repositories.UserRepository) *DirectoryService {
	return &DirectoryService{
		userRepo: userRepo,
	}
}

// ListForCaller returns every account for an admin caller, and only the
// public accounts for anyone else. Order is insertion order either way.
func (s *DirectoryService) ListForCaller(principal models.Principal) ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if principal.IsAdmin {
		return users, nil
	}
	return filterPublic(users), nil
}

// ListPublic returns the public accounts. No caller identity is involved.
func (s *DirectoryService) ListPublic() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return filterPublic(users), nil
}

func filterPublic(users []models.User) []models.User {
	public := make([]models.User, 0, len(users))
	for _, user := range users {
		if user.IsPublic {
			public = append(public, user)
		}
	}
	return public
}
