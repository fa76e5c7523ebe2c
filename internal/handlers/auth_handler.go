package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/petsocial/backend/internal/middleware"
	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler exchanges credentials for session tokens
type AuthHandler struct {
	credentials  *services.CredentialStore
	tokens       *middleware.JWTManager
	firebaseAuth middleware.IDTokenVerifier // nil when Firebase is not configured
}

// NewAuthHandler creates a new AuthHandler. firebaseAuth may be nil.
func NewAuthHandler(credentials *services.CredentialStore, tokens *middleware.JWTManager, firebaseAuth middleware.IDTokenVerifier) *AuthHandler {
	return &AuthHandler{
		credentials:  credentials,
		tokens:       tokens,
		firebaseAuth: firebaseAuth,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/auth", h.SignIn)
	g.GET("/auth", h.Me, requireAuth)
	if h.firebaseAuth != nil {
		g.POST("/auth/firebase", h.FirebaseLogin)
	}
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SignInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.credentials.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return errorsBody("Invalid Credentials")
		}
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Me returns the authenticated user without the password hash
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.credentials.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// FirebaseLogin verifies a Firebase ID token, links it to the local account with the
// same verified email and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}
	email, _ := token.Claims["email"].(string)
	emailVerified, _ := token.Claims["email_verified"].(bool)

	user, err := h.credentials.LinkFirebase(c.Request().Context(), token.UID, email, emailVerified)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No registered user for this Firebase account")
		}
		return err
	}

	localJWT, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": localJWT})
}
