package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"profilehub/internal/middleware"
	"profilehub/internal/models"
	"profilehub/internal/services"
)

// DirectoryHandler handles the profile listing routes.
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
	}
}

// RegisterRoutes registers the listing routes. The full listing is gated on
// the admin request marker; the public listing takes no auth at all.
func (h *DirectoryHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profiles", middleware.AdminRequired(), h.HandleProfiles)
	router.Get("/public-profiles", h.HandlePublicProfiles)
}

// HandleProfiles lists profiles for the caller. An admin sees every
// account; anyone else would see only the public subset, though the admin
// gate in front of this route means the non-admin branch is reached only if
// the route is wired without it.
func (h *DirectoryHandler) HandleProfiles(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFromCtx(c)
	if !ok {
		principal = models.Principal{}
	}

	profiles, err := h.directoryService.ListForCaller(principal)
	if err != nil {
		log.Printf("Error listing profiles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profiles",
		})
	}

	return c.JSON(fiber.Map{
		"profiles": profiles,
	})
}

// HandlePublicProfiles lists the accounts whose visibility flag is set.
func (h *DirectoryHandler) HandlePublicProfiles(c *fiber.Ctx) error {
	profiles, err := h.directoryService.ListPublic()
	if err != nil {
		log.Printf("Error listing public profiles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve public profiles",
		})
	}

	return c.JSON(fiber.Map{
		"publicProfiles": profiles,
	})
}
