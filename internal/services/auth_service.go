package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"

	"profilehub/internal/models"
	"profilehub/internal/repositories"
	"profilehub/pkg/rabbitmq"
)

// AuthService handles registration, credential authentication, and the
// session-token codec used by the external-provider callback.
type AuthService struct {
	userRepo   repositories.UserRepository
	mqClient   *rabbitmq.Client
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which a session token is valid
}

// NewAuthService creates a new AuthService. mqClient may be nil, in which
// case registration events are not published.
func NewAuthService(userRepo repositories.UserRepository, mqClient *rabbitmq.Client, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mqClient:   mqClient,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// Register creates a new account. All three fields are mandatory, and the
// email must not already be registered.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingField
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: password,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishUserRegistered(map[string]interface{}{
			"userID":   user.ID,
			"username": user.Username,
			"email":    user.Email,
		}); err != nil {
			log.Printf("Warning: failed to publish registration event for user %d: %v", user.ID, err)
		}
	}

	return user, nil
}

// Login authenticates an email/password pair. An unknown email and a wrong
// password both return ErrInvalidCredentials.
//
// Login does not establish a session. The system this replaces never stored
// the credential-login result anywhere a later request could read it, and
// that behaviour is preserved; only the external-provider callback issues a
// session token.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSessionToken signs a session token carrying the given principal.
func (s *AuthService) IssueSessionToken(principal models.Principal) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"kind":         string(principal.Kind),
		"user_id":      principal.UserID,
		"provider":     principal.Provider,
		"external_id":  principal.ExternalID,
		"display_name": principal.DisplayName,
		"email":        principal.Email,
		"exp":          now.Add(s.tokenDurat).Unix(),
		"iat":          now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken parses and validates a session token, returning the
// principal it carries.
func (s *AuthService) ValidateSessionToken(tokenString string) (models.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return models.Principal{}, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Principal{}, fmt.Errorf("invalid session token")
	}

	principal := models.Principal{
		Kind:        models.PrincipalKind(claimString(claims, "kind")),
		Provider:    claimString(claims, "provider"),
		ExternalID:  claimString(claims, "external_id"),
		DisplayName: claimString(claims, "display_name"),
		Email:       claimString(claims, "email"),
	}
	if id, ok := claims["user_id"].(float64); ok {
		principal.UserID = uint(id)
	}
	return principal, nil
}

// claimString reads a string claim, tolerating absence.
func claimString(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}
