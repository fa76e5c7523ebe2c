package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user registration
type UserHandler struct {
	credentials *services.CredentialStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(credentials *services.CredentialStore) *UserHandler {
	return &UserHandler{credentials: credentials}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.Register)
}

// Register creates a local user. It does not log the user in.
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.credentials.Register(c.Request().Context(), req); err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			return errorsBody("User already exists")
		}
		return err
	}
	return c.JSON(http.StatusCreated, messageBody{Msg: "User registered"})
}
