package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"profilehub/internal/models"
	"profilehub/internal/services"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session_token"

// PrincipalKey is the fiber.Ctx locals key holding the request principal.
const PrincipalKey = "principal"

// AdminHeader is the request marker that grants the admin capability.
const AdminHeader = "is-admin"

// AuthRequired resolves the session principal from the session cookie.
// Requests without a valid session are redirected to the login entry point
// rather than answered with a structured error.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}

		principal, err := authService.ValidateSessionToken(tokenString)
		if err != nil {
			log.Printf("Session token validation failed: %v", err)
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}

// AdminRequired grants access purely on the admin request marker. It is a
// per-request capability, independent of any session identity, and replaces
// whatever identity the request carried with a synthetic admin principal.
// It is never combined with AuthRequired on the same route.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(AdminHeader) == "true" {
			c.Locals(PrincipalKey, models.AdminPrincipal())
			return c.Next()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}
}

// PrincipalFromCtx reads the principal stored by AuthRequired or
// AdminRequired. The boolean reports whether one was present.
func PrincipalFromCtx(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals(PrincipalKey).(models.Principal)
	return principal, ok
}
