package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilehub/internal/models"
	"profilehub/internal/repositories"
	"profilehub/internal/services"
)

func newProfileFixture(t *testing.T) (*services.ProfileService, repositories.UserRepository, models.Principal) {
	t.Helper()
	repo := repositories.NewMemoryUserRepository()
	user := &models.User{Username: "alice", Email: "alice@x.com", Password: "pw1"}
	require.NoError(t, repo.Create(user))
	return services.NewProfileService(repo), repo, models.LocalPrincipal(user)
}

func TestProfileService_UpdateProfilePartial(t *testing.T) {
	svc, repo, principal := newProfileFixture(t)

	updated, err := svc.UpdateProfile(principal, services.ProfileUpdate{Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)

	// Absent fields stay untouched.
	stored, err := repo.GetByID(principal.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "alice@x.com", stored.Email)
	assert.Equal(t, "pw1", stored.Password)
	assert.Empty(t, stored.Name)
}

func TestProfileService_UpdateProfileAllFields(t *testing.T) {
	svc, repo, principal := newProfileFixture(t)

	_, err := svc.UpdateProfile(principal, services.ProfileUpdate{
		Name:     "Alice A.",
		Email:    "alice@new.com",
		Phone:    "555-0100",
		Password: "pw2",
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(principal.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", stored.Name)
	assert.Equal(t, "alice@new.com", stored.Email)
	assert.Equal(t, "555-0100", stored.Phone)
	assert.Equal(t, "pw2", stored.Password)
}

func TestProfileService_ExternalPrincipalIsNotFound(t *testing.T) {
	svc, _, _ := newProfileFixture(t)

	external := models.Principal{
		Kind:        models.PrincipalExternal,
		Provider:    "github",
		ExternalID:  "12345",
		DisplayName: "Drifter",
	}

	_, err := svc.UpdateProfile(external, services.ProfileUpdate{Name: "nope"})
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	_, err = svc.SetVisibility(external, true)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	_, err = svc.AttachPhotoURL(external, "https://example.com/a.png")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestProfileService_AttachUploadedPhoto(t *testing.T) {
	svc, repo, principal := newProfileFixture(t)

	user, err := svc.AttachUploadedPhoto(principal, "1712345678901.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1712345678901.png", user.Photo)

	stored, err := repo.GetByID(principal.UserID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1712345678901.png", stored.Photo)

	_, err = svc.AttachUploadedPhoto(principal, "")
	assert.ErrorIs(t, err, services.ErrNoFile)
}

func TestProfileService_AttachPhotoURL(t *testing.T) {
	svc, _, principal := newProfileFixture(t)

	user, err := svc.AttachPhotoURL(principal, "https://example.com/me.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/me.jpg", user.Photo)
}

func TestProfileService_SetVisibility(t *testing.T) {
	svc, repo, principal := newProfileFixture(t)

	user, err := svc.SetVisibility(principal, true)
	require.NoError(t, err)
	assert.True(t, user.IsPublic)

	stored, err := repo.GetByID(principal.UserID)
	require.NoError(t, err)
	assert.True(t, stored.IsPublic)

	user, err = svc.SetVisibility(principal, false)
	require.NoError(t, err)
	assert.False(t, user.IsPublic)

	// A principal pointing at a missing account is a not-found failure.
	_, err = svc.SetVisibility(models.Principal{Kind: models.PrincipalLocal, UserID: 42}, true)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}
