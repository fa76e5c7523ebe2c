package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/petsocial/backend/internal/models"
	"github.com/anonto42/petsocial/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests related to pet profiles
type ProfileHandler struct {
	registry    *services.PetProfileRegistry
	credentials *services.CredentialStore // To attach owner details to public listings
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(registry *services.PetProfileRegistry, credentials *services.CredentialStore) *ProfileHandler {
	return &ProfileHandler{
		registry:    registry,
		credentials: credentials,
	}
}

// RegisterProfileRoutes registers pet profile routes. Reads are public, writes need a token.
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/profile/me", h.GetMyProfiles, requireAuth)
	g.POST("/profile", h.UpsertProfile, requireAuth)
	g.GET("/profile", h.GetProfiles)
	g.GET("/profile/user/:user_id", h.GetProfileByUser)
}

// GetMyProfiles returns the caller's pet profiles
func (h *ProfileHandler) GetMyProfiles(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	profiles, err := h.registry.GetMine(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "There are no pets for this user")
		}
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// UpsertProfile creates the caller's pet profile or merges the supplied fields into it
func (h *ProfileHandler) UpsertProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpsertPetProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.registry.Upsert(c.Request().Context(), userID, req.Fields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetProfiles returns every pet profile with its owner's public info
func (h *ProfileHandler) GetProfiles(c echo.Context) error {
	profiles, err := h.registry.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	out, err := h.withOwners(c, profiles)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// GetProfileByUser returns the pet profile owned by :user_id
func (h *ProfileHandler) GetProfileByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Profile not found")
	}

	profile, err := h.registry.GetByUser(c.Request().Context(), uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Profile not found")
		}
		return err
	}

	out, err := h.withOwners(c, []models.PetProfile{*profile})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out[0])
}

// withOwners attaches owner details, leaving Owner nil for users that no longer resolve
func (h *ProfileHandler) withOwners(c echo.Context, profiles []models.PetProfile) ([]models.PetProfileWithOwner, error) {
	ids := make([]uint, 0, len(profiles))
	seen := make(map[uint]bool, len(profiles))
	for _, p := range profiles {
		if !seen[p.User] {
			seen[p.User] = true
			ids = append(ids, p.User)
		}
	}

	owners, err := h.credentials.CompactUsers(c.Request().Context(), ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.PetProfileWithOwner, len(profiles))
	for i, p := range profiles {
		out[i] = models.PetProfileWithOwner{PetProfile: p}
		if owner, ok := owners[p.User]; ok {
			out[i].Owner = &owner
		}
	}
	return out, nil
}
