package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"profilehub/internal/middleware"
	"profilehub/internal/repositories"
	"profilehub/internal/services"
)

// oauthStateCookie pins the CSRF state issued when the provider flow starts.
const oauthStateCookie = "oauth_state"

// AuthHandler handles HTTP requests for registration, credential login, and
// the external-provider flow.
type AuthHandler struct {
	authService  *services.AuthService
	oauthService *services.OAuthService
	validate     *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, oauthService *services.OAuthService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		oauthService: oauthService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/auth/github", h.HandleOAuthStart)
	router.Get("/auth/github/callback", h.HandleOAuthCallback)
	router.Get("/logout", h.HandleLogout)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new account registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide username, email, and password",
		})
	}

	user, err := h.authService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingField):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please provide username, email, and password",
			})
		case errors.Is(err, repositories.ErrEmailTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "User with this email already exists",
			})
		default:
			log.Printf("Error registering user: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not register user",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates an email/password pair.
//
// A successful login answers with the account but does not set the session
// cookie; only the provider callback establishes a session. This mirrors
// the behaviour of the system this service replaces.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide email and password",
		})
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingField) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Please provide email and password",
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid email or password",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// HandleOAuthStart redirects the user agent to the provider's authorize URL.
func (h *AuthHandler) HandleOAuthStart(c *fiber.Ctx) error {
	state := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
	})
	return c.Redirect(h.oauthService.AuthCodeURL(state), fiber.StatusFound)
}

// HandleOAuthCallback completes the provider flow. On success the verified
// profile becomes the session principal; any failure redirects back to the
// login entry point without a structured error.
func (h *AuthHandler) HandleOAuthCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if c.Query("error") != "" || code == "" {
		return c.Redirect("/login", fiber.StatusFound)
	}
	if state == "" || state != c.Cookies(oauthStateCookie) {
		return c.Redirect("/login", fiber.StatusFound)
	}
	clearCookie(c, oauthStateCookie)

	principal, err := h.oauthService.HandleCallback(c.UserContext(), code)
	if err != nil {
		log.Printf("Provider callback failed: %v", err)
		return c.Redirect("/login", fiber.StatusFound)
	}

	token, err := h.authService.IssueSessionToken(principal)
	if err != nil {
		log.Printf("Failed to issue session token: %v", err)
		return c.Redirect("/login", fiber.StatusFound)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/profile", fiber.StatusFound)
}

// HandleLogout clears the session principal.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	clearCookie(c, middleware.SessionCookie)
	return c.Redirect("/", fiber.StatusFound)
}

func clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}
