package services

import (
	"path"

	"profilehub/internal/models"
	"profilehub/internal/repositories"
)

// ProfileUpdate carries the optional fields of a profile edit. Empty fields
// are left untouched on the account.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ProfileService mutates an account's profile fields, photo reference, and
// visibility flag on behalf of the authenticated owner.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
	}
}

// resolve maps a principal to its backing account. External and admin
// principals have no local account and fail with ErrUserNotFound.
func (s *ProfileService) resolve(principal models.Principal) (*models.User, error) {
	if principal.Kind != models.PrincipalLocal {
		return nil, repositories.ErrUserNotFound
	}
	return s.userRepo.GetByID(principal.UserID)
}

// UpdateProfile applies the present fields of the update to the caller's
// account. A new email is not re-checked for uniqueness; the system this
// replaces allowed the change freely and the gap is kept.
func (s *ProfileService) UpdateProfile(principal models.Principal, update ProfileUpdate) (*models.User, error) {
	user, err := s.resolve(principal)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Password != "" {
		user.Password = update.Password
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AttachUploadedPhoto points the account's photo at a stored upload.
func (s *ProfileService) AttachUploadedPhoto(principal models.Principal, fileName string) (*models.User, error) {
	if fileName == "" {
		return nil, ErrNoFile
	}

	user, err := s.resolve(principal)
	if err != nil {
		return nil, err
	}

	user.Photo = path.Join("/uploads", fileName)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AttachPhotoURL sets the account's photo to an externally supplied URL.
// The URL is stored as given, without validation.
func (s *ProfileService) AttachPhotoURL(principal models.Principal, imageURL string) (*models.User, error) {
	user, err := s.resolve(principal)
	if err != nil {
		return nil, err
	}

	user.Photo = imageURL
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetVisibility sets the account's public listing flag.
func (s *ProfileService) SetVisibility(principal models.Principal, isPublic bool) (*models.User, error) {
	user, err := s.resolve(principal)
	if err != nil {
		return nil, err
	}

	user.IsPublic = isPublic
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
