package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"profilehub/internal/middleware"
	"profilehub/internal/repositories"
	"profilehub/internal/services"
)

// ProfileHandler handles HTTP requests for viewing and editing the
// authenticated caller's profile. All of its routes expect the AuthRequired
// middleware to have resolved a principal.
type ProfileHandler struct {
	profileService *services.ProfileService
	uploadDir      string
}

// NewProfileHandler creates a new ProfileHandler. uploadDir is the directory
// uploaded photos are written to.
func NewProfileHandler(profileService *services.ProfileService, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		uploadDir:      uploadDir,
	}
}

// RegisterRoutes registers the profile routes, each guarded by the given
// session middleware.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	router.Get("/profile", authRequired, h.HandleGetProfile)
	router.Put("/profile", authRequired, h.HandleUpdateProfile)
	router.Get("/profileProtected", authRequired, h.HandleGreeting)
	router.Post("/upload", authRequired, h.HandleUpload)
	router.Post("/photo-url", authRequired, h.HandlePhotoURL)
	router.Put("/profile/privacy", authRequired, h.HandlePrivacy)
}

// HandleGetProfile returns the request's session principal.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.JSON(principal)
}

// HandleGreeting greets the authenticated caller by display name.
func (h *ProfileHandler) HandleGreeting(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.SendString(fmt.Sprintf("Hello, %s!", principal.DisplayName))
}

// HandleUpdateProfile applies a partial edit to the caller's account.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	var update services.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.profileService.UpdateProfile(principal, update)
	if err != nil {
		return profileError(c, err, "Could not update profile")
	}

	return c.JSON(fiber.Map{
		"message": "Profile details updated successfully",
		"user":    user,
	})
}

// HandleUpload stores an uploaded photo and points the caller's profile at
// it. Files are named by upload timestamp, keeping the original extension.
func (h *ProfileHandler) HandleUpload(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please upload a file",
		})
	}

	ext := filepath.Ext(fileHeader.Filename)
	fileName := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	if err := c.SaveFile(fileHeader, filepath.Join(h.uploadDir, fileName)); err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not store uploaded file",
		})
	}

	user, err := h.profileService.AttachUploadedPhoto(principal, fileName)
	if err != nil {
		return profileError(c, err, "Could not update photo")
	}

	return c.JSON(fiber.Map{
		"message":  "Photo uploaded successfully",
		"photoUrl": user.Photo,
	})
}

// PhotoURLRequest represents the request body for setting a photo by URL.
type PhotoURLRequest struct {
	ImageURL string `json:"imageUrl"`
}

// HandlePhotoURL sets the caller's photo to an externally supplied URL.
func (h *ProfileHandler) HandlePhotoURL(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	var req PhotoURLRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing photo URL body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.profileService.AttachPhotoURL(principal, req.ImageURL)
	if err != nil {
		return profileError(c, err, "Could not update photo URL")
	}

	return c.JSON(fiber.Map{
		"message":  "Photo URL updated successfully",
		"photoUrl": user.Photo,
	})
}

// PrivacyRequest represents the request body for the visibility flag.
type PrivacyRequest struct {
	IsPublic bool `json:"isPublic"`
}

// HandlePrivacy sets the caller's public listing flag.
func (h *ProfileHandler) HandlePrivacy(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}

	var req PrivacyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing privacy body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user, err := h.profileService.SetVisibility(principal, req.IsPublic)
	if err != nil {
		return profileError(c, err, "Could not update privacy")
	}

	return c.JSON(fiber.Map{
		"message":  "Profile privacy updated successfully",
		"isPublic": user.IsPublic,
	})
}

// profileError maps service failures to the response taxonomy. A principal
// with no backing account (external identities included) is a 404.
func profileError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found",
		})
	}
	if errors.Is(err, services.ErrNoFile) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please upload a file",
		})
	}
	log.Printf("Profile operation failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
	})
}
